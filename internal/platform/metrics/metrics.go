// Package metrics expone los contadores Prometheus del proceso.
// Se registran en el registry por defecto y se sirven en /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "horsecontrol",
		Subsystem: "notifications",
		Name:      "generated_total",
		Help:      "Notificaciones nuevas materializadas por el motor, por categoría.",
	}, []string{"category"})

	NotificationRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "horsecontrol",
		Subsystem: "notifications",
		Name:      "engine_runs_total",
		Help:      "Pasadas completas del motor de notificaciones.",
	})

	NotificationRunErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "horsecontrol",
		Subsystem: "notifications",
		Name:      "engine_errors_total",
		Help:      "Pasadas del motor que terminaron con error.",
	})

	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "horsecontrol",
		Subsystem: "store",
		Name:      "errors_total",
		Help:      "Errores de carga/guardado del almacén de documentos.",
	}, []string{"op"})
)
