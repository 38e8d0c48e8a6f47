package domain

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "principiante"
	DifficultyIntermediate Difficulty = "intermedio"
	DifficultyAdvanced     Difficulty = "avanzado"
)

// Course references its tutor by a duplicated id and name. Nothing checks that
// the tutor exists.
type Course struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title" validate:"required,min=2"`
	Description   string     `json:"description,omitempty"`
	TutorID       string     `json:"tutor_id,omitempty"`
	TutorName     string     `json:"tutor_name,omitempty"`
	Difficulty    Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=principiante intermedio avanzado"`
	Modalities    []string   `json:"modalities,omitempty"`
	Price         float64    `json:"price" validate:"gte=0"`
	Rating        float64    `json:"rating" validate:"gte=0,lte=5"`
	DurationWeeks int        `json:"duration_weeks,omitempty" validate:"gte=0"`
	Reviews       []Review   `json:"reviews,omitempty"`
}

func (c *Course) GetID() string   { return c.ID }
func (c *Course) SetID(id string) { c.ID = id }
