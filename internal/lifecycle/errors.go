package lifecycle

import "errors"

// Классы ошибок ядра; хендлеры отображают их в HTTP-статусы.
var (
	// ErrNotFound — запись отсутствует либо у пользователя нет доступа
	// (отсутствие доступа намеренно неотличимо от отсутствия записи)
	ErrNotFound = errors.New("not found")

	// ErrConflict — у пользователя уже есть запущенный таймер
	ErrConflict = errors.New("conflict")

	// ErrForbidden — запись чужая
	ErrForbidden = errors.New("forbidden")

	// ErrValidation — некорректный вход
	ErrValidation = errors.New("validation failed")

	// ErrTransition — нарушение правил жизненного цикла проекта
	ErrTransition = errors.New("illegal transition")
)
