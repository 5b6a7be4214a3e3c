package reproduction

// RecordType define la etapa del ciclo reproductivo.
// El flujo es estricto: insemination -> gestation -> birth, cada etapa
// en su propio registro encadenado por ParentID.
type RecordType string

const (
	TypeInsemination RecordType = "insemination"
	TypeGestation    RecordType = "gestation"
	TypeBirth        RecordType = "birth"
)

// Status define el estado de un registro. Solo in_progress es accionable;
// completed y cancelled son terminales e inmutables.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// FoalSex define el sexo del potrillo en un registro de nacimiento.
type FoalSex string

const (
	FoalMale   FoalSex = "male"
	FoalFemale FoalSex = "female"
)

// GestationDays es la duración estimada de la gestación equina:
// expectedBirthDate = fecha de inseminación + 340 días.
const GestationDays = 340
