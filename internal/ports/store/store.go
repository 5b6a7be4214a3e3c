package store

import (
	"context"
	"errors"
)

var (
	// ErrNoDocument indica que la clave no tiene documento persistido.
	// El caller debe quedarse con su valor por defecto.
	ErrNoDocument = errors.New("no document")
)

// Store es un almacén clave -> documento JSON con un namespace por colección.
// Load deserializa el documento en v; si la clave no existe devuelve
// ErrNoDocument y deja v intacto (v ya viene con el fallback).
type Store interface {
	Load(ctx context.Context, key string, v any) error
	Save(ctx context.Context, key string, v any) error
}

// Claves de colección. Se conservan los namespaces originales de la app.
const (
	KeyHorses                = "horsecontrol-horses"
	KeyEvents                = "horsecontrol-events"
	KeyStock                 = "horsecontrol-stock"
	KeyTransactions          = "horsecontrol-transactions"
	KeyCompetitions          = "horsecontrol-competitions"
	KeyReproductions         = "horsecontrol-reproductions"
	KeyCollaborators         = "horsecontrol-colaboradores"
	KeyNotifications         = "horsecontrol-notifications"
	KeyNotificationSettings  = "horsecontrol-notification-settings"
	KeyAppSettings           = "horsecontrol-settings"
	KeyUsers                 = "hc_users"
	KeyLastNotificationCheck = "horsecontrol-last-notification-check"
)
