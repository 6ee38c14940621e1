package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBlocked            = errors.New("identifier is blocked")
	ErrInvalidAccessToken = errors.New("invalid access token")
	ErrNotifierClosed     = errors.New("notifier is closed")
	ErrAlertDropped       = errors.New("too many alerts in flight, alert dropped")
)

// StorageError indica que o armazenamento de violações não respondeu.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NotifyError indica falha na entrega de um alerta.
type NotifyError struct {
	Recipient string
	Err       error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("notify %s: %v", e.Recipient, e.Err)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}

func IsBlockedError(err error) bool {
	return errors.Is(err, ErrBlocked)
}

func IsStorageError(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

func IsNotifyError(err error) bool {
	var notifyErr *NotifyError
	return errors.As(err, &notifyErr)
}
