package dto

// UserDTO - представление пользователя из базы аутентификации.
// short_fio собирается как "Фамилия И. О." с пропуском пустых частей.
type UserDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Patronymic string `json:"patronymic"`
	ShortFio   string `json:"short_fio"`
}

type ShortUserDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}
