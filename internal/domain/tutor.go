package domain

// FilterAll is the sentinel the storefront sends for "no filter" on select menus.
const FilterAll = "todos"

type CourseRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type GearItem struct {
	Name  string `json:"name"`
	Brand string `json:"brand,omitempty"`
}

// Availability maps a weekday ("lunes".."domingo") to "HH:MM-HH:MM" slots.
type Availability map[string][]string

type Tutor struct {
	ID               string       `json:"id"`
	Slug             string       `json:"slug"`
	Name             string       `json:"name" validate:"required,min=2"`
	ShortDescription string       `json:"short_description,omitempty"`
	Description      string       `json:"description,omitempty"`
	Instruments      []string     `json:"instruments,omitempty"`
	Styles           []string     `json:"styles,omitempty"`
	Levels           []string     `json:"levels,omitempty"`
	Modalities       []string     `json:"modalities,omitempty"`
	HourlyRate       float64      `json:"hourly_rate" validate:"gte=0"`
	Rating           float64      `json:"rating" validate:"gte=0,lte=5"`
	Availability     Availability `json:"availability,omitempty"`
	Courses          []CourseRef  `json:"courses,omitempty"`
	Reviews          []Review     `json:"reviews,omitempty"`
	Gear             []GearItem   `json:"gear,omitempty"`
	AvatarURL        string       `json:"avatar_url,omitempty"`
	City             string       `json:"city,omitempty"`
}

func (t *Tutor) GetID() string   { return t.ID }
func (t *Tutor) SetID(id string) { t.ID = id }
