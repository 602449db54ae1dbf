package license

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/barberos/barbershop-backend/internal/storage/repository"
)

// Коды причин отказа шлюза. Имена стабильны и входят во внешний контракт:
// клиенты ветвятся по полю code ответа.
const (
	CodeNoToken         = "NO_TOKEN"
	CodeNoLicense       = "NO_LICENSE"
	CodeInactiveLicense = "INACTIVE_LICENSE"
	CodeExpiredLicense  = "EXPIRED_LICENSE"
	CodeNoMachineID     = "NO_MACHINE_ID"
	CodeInvalidMachine  = "INVALID_MACHINE"
)

// Decision описывает решение шлюза авторизации по одному запросу.
type Decision struct {
	Allowed        bool   // Пропустить ли запрос к бизнес-логике
	Status         int    // HTTP-статус отказа
	Code           string // Машиночитаемый код причины
	Error          string // Краткое описание отказа
	ShowSupport    bool   // Показывать ли клиенту контакт поддержки
	SupportMessage string // Сообщение для обращения в поддержку
}

var allow = Decision{Allowed: true}

func deny(status int, code, errMsg string, showSupport bool, supportMsg string) Decision {
	return Decision{
		Status:         status,
		Code:           code,
		Error:          errMsg,
		ShowSupport:    showSupport,
		SupportMessage: supportMsg,
	}
}

// Authorize решает, пропустить ли запрос к защищённой операции.
//
// Правила применяются по порядку:
//  1. путь из списка исключений — пропуск без проверки лицензии;
//  2. путь вне пространства /api/ — вне юрисдикции шлюза, пропуск;
//  3. без учётных данных — отказ NO_TOKEN: отсутствие токена
//     является проблемой аутентификации, а не лицензирования;
//  4. у владельца нет барбершопа с лицензией — отказ NO_LICENSE;
//  5. лицензия деактивирована — отказ INACTIVE_LICENSE;
//  6. срок лицензии истёк — флаг активности снимается и сохраняется,
//     отказ EXPIRED_LICENSE; повторная проверка этой же лицензии
//     уже даст INACTIVE_LICENSE;
//  7. не передан идентификатор машины — отказ NO_MACHINE_ID;
//  8. привязка лицензии не совпадает с машиной запроса — отказ
//     INVALID_MACHINE, перепривязки на этом пути нет;
//  9. иначе пропуск.
//
// Снятие флага активности в правиле 6 — единственная мутация шлюза,
// остальные решения являются чистыми чтениями.
func (s *Service) Authorize(ctx context.Context, path, ownerUID, machineID string) (Decision, error) {
	const op = "license.Authorize"

	for _, prefix := range s.exemptPaths {
		// Совпадение только по границе сегмента: "/a/report" освобождает
		// "/a/report" и "/a/report/...", но не "/a/reportX".
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return allow, nil
		}
	}
	if !strings.HasPrefix(path, "/api/") {
		return allow, nil
	}

	if ownerUID == "" {
		return deny(http.StatusUnauthorized, CodeNoToken,
			"authorization token not provided", false,
			""), nil
	}

	swl, err := s.store.GetShopWithLicenseByOwner(ctx, ownerUID)
	if err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return deny(http.StatusNotFound, CodeNoLicense,
				"no license associated with this account", true,
				"contact support to provision a license for your account"), nil
		}
		return Decision{}, fmt.Errorf("%s: %w", op, err)
	}

	lic := swl.License
	if !lic.IsActive {
		return deny(http.StatusForbidden, CodeInactiveLicense,
			"license is inactive", true,
			"your license has been deactivated, contact support to renew it"), nil
	}

	if lic.IsExpired(time.Now().UTC()) {
		if err := s.store.SetLicenseActive(ctx, lic.ID, false); err != nil {
			return Decision{}, fmt.Errorf("%s: %w", op, err)
		}
		return deny(http.StatusForbidden, CodeExpiredLicense,
			"license expired", true,
			"your license has expired, contact support to renew it"), nil
	}

	if machineID == "" {
		return deny(http.StatusForbidden, CodeNoMachineID,
			"machine id not provided", true,
			"the application did not send a machine id, contact support"), nil
	}

	if !lic.IsBound() || *lic.MachineID != machineID {
		return deny(http.StatusForbidden, CodeInvalidMachine,
			"license is not activated for this machine", true,
			"this license is bound to another machine, contact support to transfer it"), nil
	}

	return allow, nil
}
