package models

import "time"

// Barbershop представляет барбершоп — учётную запись арендатора.
// Каждый пользователь владеет ровно одним барбершопом,
// каждый барбершоп ссылается ровно на одну лицензию.
type Barbershop struct {
	ID        int64     // Внутренний идентификатор
	Name      string    // Название барбершопа
	OwnerUID  string    // UUID пользователя-владельца, уникален
	LicenseID int64     // Идентификатор лицензии барбершопа
	CreatedAt time.Time // Момент создания
}

// ShopWithLicense объединяет барбершоп и его лицензию,
// как их возвращает выборка с JOIN для шлюза авторизации.
type ShopWithLicense struct {
	Shop    Barbershop
	License License
}
