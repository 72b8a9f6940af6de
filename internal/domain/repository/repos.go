package repository

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Products      ProductRepository
	Assets        AssetUnitRepository
	Movements     MovementRepository
	Repairs       RepairRepository
	Users         UserRepository
	Branches      BranchRepository
	Departments   DepartmentRepository
	Notifications NotificationRepository
}
