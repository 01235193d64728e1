package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/stepanovme/SupplyServiceApi/internal/controllers"
)

// Controllers - всё, что нужно для регистрации маршрутов.
type Controllers struct {
	Request         *controllers.RequestController
	RequestItem     *controllers.RequestItemController
	RequestLog      *controllers.RequestLogController
	RequestFile     *controllers.RequestFileController
	RequestObject   *controllers.RequestObjectController
	Project         *controllers.ProjectController
	ProjectUserRole *controllers.ProjectUserRoleController
	Catalog         *controllers.CatalogController
}

// InitRoutes регистрирует маршруты сервиса под /api/supply. Все
// маршруты закрыты сессионной аутентификацией.
func InitRoutes(e *echo.Echo, c Controllers, sessionAuth echo.MiddlewareFunc) {
	api := e.Group("/api/supply", sessionAuth)

	api.GET("/requests", c.Request.GetAll)
	api.POST("/requests", c.Request.Create)
	api.GET("/requests/export", c.Request.Export)
	api.GET("/requests/my", c.Request.GetMy)
	api.GET("/requests/my/:id", c.Request.GetMyByID)
	api.GET("/requests/:id", c.Request.GetByID)
	api.PATCH("/requests/:id", c.Request.Update)

	api.POST("/requests/:id/items", c.RequestItem.Create)
	api.PATCH("/requests/:id/items/:itemId", c.RequestItem.Update)

	api.POST("/requests/:id/approvers", c.RequestLog.Create)
	api.PATCH("/requests/:id/approvers/:logId", c.RequestLog.Update)
	api.DELETE("/requests/:id/approvers/:logId", c.RequestLog.Delete)

	api.GET("/requests/:id/attachments", c.RequestFile.List)
	api.POST("/requests/:id/attachments", c.RequestFile.Upload)
	api.GET("/requests/:id/attachments/:fileId/download", c.RequestFile.Download)
	api.DELETE("/requests/:id/attachments/:fileId", c.RequestFile.Delete)

	api.GET("/request-objects", c.RequestObject.GetAll)
	api.GET("/request-objects/my", c.RequestObject.GetMy)

	api.GET("/projects", c.Project.GetAll)
	api.POST("/projects", c.Project.Create)
	api.PATCH("/projects/:id", c.Project.Update)

	api.GET("/project-user-roles", c.ProjectUserRole.GetAll)
	api.POST("/project-user-roles", c.ProjectUserRole.Create)
	api.DELETE("/project-user-roles/:id", c.ProjectUserRole.Delete)

	api.GET("/units", c.Catalog.GetUnits)
	api.GET("/warehouse-categories", c.Catalog.GetWarehouseCategories)
	api.GET("/nomenclature", c.Catalog.GetNomenclature)
}
