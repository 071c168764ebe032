package entity

// Category is one of the closed set of usage buckets. The numeric value is the
// category's position in the fixed label list and is used for tie-breaking.
type Category int

const (
	Browser Category = iota
	Communication
	Games
	Productivity
	Entertainment
	Other
)

// labels are the candidate labels handed to the classifier, in order.
var labels = [...]string{
	Browser:       "Navegador",
	Communication: "Comunicação",
	Games:         "Jogos",
	Productivity:  "Produtividade",
	Entertainment: "Entretenimento",
	Other:         "Outros",
}

// Categories returns every category in label-list order.
func Categories() []Category {
	return []Category{Browser, Communication, Games, Productivity, Entertainment, Other}
}

// Labels returns the fixed ordered label set.
func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels[:])
	return out
}

func (c Category) Label() string {
	if c < Browser || c > Other {
		return labels[Other]
	}
	return labels[c]
}

func (c Category) String() string {
	return c.Label()
}

// ParseCategory maps a label back to its category.
func ParseCategory(label string) (Category, bool) {
	for i, l := range labels {
		if l == label {
			return Category(i), true
		}
	}
	return Other, false
}

// CategoryAssignment records the category resolved for one app name.
type CategoryAssignment struct {
	App      string
	Category Category
	// Static is true when the category came from the lookup table.
	Static bool
}
