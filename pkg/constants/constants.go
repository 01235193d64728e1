// pkg/constants/constants.go
package constants

//============== СТАТУСЫ ЗАЯВОК ==============

// RequestStatusNewID - фиксированный ID статуса "Новая" в справочнике
// статусов снабжения. Сидер вставляет запись именно с этим ID.
const RequestStatusNewID = "5b0e7d1c-0c2a-4b8e-9a41-2f9d1a7e3c10"

//============== ТИПЫ УРОВНЕЙ ОБЪЕКТОВ ==============

// Типы уровней в иерархии object_levels, участвующие в построении
// имени проекта. Остальные типы при обходе пропускаются.
const (
	LevelTypeSection   = "section"
	LevelTypeAgreement = "agreement"
	LevelTypeWorkType  = "worktype"
)

//============== РОЛИ ПОЛЬЗОВАТЕЛЕЙ НА ОБЪЕКТАХ ==============

const (
	RoleSupplyManager       = "Supply manager"
	RoleRequestApprover     = "Request approver"
	RoleBudgetOwner         = "Budget owner"
	RolePaymentPlanner      = "Payment planner"
	RoleDisbursementOfficer = "Disbursement officer"
	RoleRequester           = "Requester"
	RoleInvoiceApprover     = "Invoice approver"
	RoleBudgetApprover      = "Budget approver"
	RolePaymentProcessor    = "Payment processor"
)

// ProjectUserRoles - полный перечень допустимых ролей (для валидации).
var ProjectUserRoles = []string{
	RoleSupplyManager,
	RoleRequestApprover,
	RoleBudgetOwner,
	RolePaymentPlanner,
	RoleDisbursementOfficer,
	RoleRequester,
	RoleInvoiceApprover,
	RoleBudgetApprover,
	RolePaymentProcessor,
}

//============== ФАЙЛЫ ==============

const (
	FileTypeRequestAttachment = "request_attachment"
	FileStatusActive          = "active"
	FileStatusDeleted         = "deleted"

	FileActionUpload   = "upload"
	FileActionDownload = "download"
	FileActionDelete   = "delete"
)

//============== CACHE KEYS ==============

const (
	// Ключ кеша сессии. Формат: session:<sha256-хеш токена> -> userID
	CacheKeySession = "session:%s"
)
