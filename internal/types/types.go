package types

// EntityID — идентификатор сущности внутри одной сессии
type EntityID int64
