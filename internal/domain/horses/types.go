package horses

// Sex define el sexo del caballo.
// @Enum male, female, gelded
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexGelded Sex = "gelded"
)

// HealthStatus define el estado de salud del caballo.
// @Enum healthy, in_treatment, under_observation
type HealthStatus string

const (
	StatusHealthy          HealthStatus = "healthy"
	StatusInTreatment      HealthStatus = "in_treatment"
	StatusUnderObservation HealthStatus = "under_observation"
)

func validSex(s Sex) bool {
	switch s {
	case SexMale, SexFemale, SexGelded:
		return true
	}
	return false
}

func validStatus(s HealthStatus) bool {
	switch s {
	case StatusHealthy, StatusInTreatment, StatusUnderObservation:
		return true
	}
	return false
}
