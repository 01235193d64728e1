package dto

import "github.com/aarondl/null/v8"

// RequestObjectDTO - элемент списка объектов заявок: уровень иерархии
// и собранное для него составное имя проекта.
type RequestObjectDTO struct {
	ID   string      `json:"id"`
	Name null.String `json:"name"`
}
