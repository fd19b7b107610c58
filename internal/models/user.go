// Package models содержит доменные структуры системы координации донорства:
// пользователей, запросы на донацию, записи фонда и публикации блога,
// а также вспомогательные Dummy-типы для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей системы.
const (
	RoleDonor     = "donor"     // обычный донор
	RoleVolunteer = "volunteer" // волонтёр, может управлять запросами и контентом
	RoleAdmin     = "admin"     // администратор, полный доступ
)

// Статусы учётной записи.
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// User представляет зарегистрированного пользователя системы.
// Email неизменяем и уникален; роль и статус меняет только администратор.
type User struct {
	UID          string    `json:"uid"`        // Уникальный идентификатор пользователя
	Email        string    `json:"email"`      // Электронная почта (ключ идентичности)
	Name         string    `json:"name"`       // Отображаемое имя
	PasswordHash string    `json:"-"`          // Хэш пароля пользователя
	Role         string    `json:"role"`       // donor, volunteer или admin
	Status       string    `json:"status"`     // active или blocked
	BloodGroup   string    `json:"bloodGroup"` // Группа крови, например "A+"
	District     string    `json:"district"`   // Район проживания
	Upazila      string    `json:"upazila"`    // Подрайон (упазила)
	AvatarURL    string    `json:"avatarUrl"`  // Ссылка на аватар во внешнем хостинге
	CreatedAt    time.Time `json:"createdAt"`  // Дата регистрации
}

// IsPrivileged сообщает, обладает ли пользователь правами волонтёра или выше.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleVolunteer || u.Role == RoleAdmin
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	BloodGroup string `json:"bloodGroup" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	District   string `json:"district" validate:"required"`
	Upazila    string `json:"upazila" validate:"required"`
	AvatarURL  string `json:"avatarUrl" validate:"omitempty,url"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DummyProfileUpdate используется для приёма данных обновления профиля из
// JSON-запроса. Email в запросе отсутствует: он неизменяем.
type DummyProfileUpdate struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	BloodGroup string `json:"bloodGroup" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	District   string `json:"district" validate:"required"`
	Upazila    string `json:"upazila" validate:"required"`
	AvatarURL  string `json:"avatarUrl" validate:"omitempty,url"`
}

// DummyUserStatus используется для приёма нового статуса учётной записи.
type DummyUserStatus struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

// DummyUserRole используется для приёма новой роли пользователя.
type DummyUserRole struct {
	Role string `json:"role" validate:"required,oneof=donor volunteer admin"`
}

// DonorFilter описывает параметры публичного поиска доноров.
type DonorFilter struct {
	BloodGroup string // Группа крови (обязательный фильтр поиска)
	District   string // Район (опционально)
	Upazila    string // Упазила (опционально)
}
