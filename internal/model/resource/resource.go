package resource

// Resource is one entry of the static support directory.
type Resource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Phone       string `json:"phone,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// Categories used by the seed directory.
const (
	CategoryCrisis     = "crisis"
	CategoryCounseling = "counseling"
	CategoryCommunity  = "community"
	CategoryTherapy    = "therapy"
)

// Seed 返回内置的支持资源目录。
func Seed() []Resource {
	return []Resource{
		{
			ID:          "crisis-hotline",
			Name:        "988 Suicide & Crisis Lifeline",
			Category:    CategoryCrisis,
			Phone:       "988",
			Description: "Free, confidential crisis support, 24 hours a day.",
		},
		{
			ID:          "stroke-helpline",
			Name:        "Stroke Support Helpline",
			Category:    CategoryCounseling,
			Phone:       "1-888-478-7653",
			Description: "Talk with specialists about life after stroke.",
		},
		{
			ID:          "survivor-network",
			Name:        "Stroke Survivor Network",
			Category:    CategoryCommunity,
			URL:         "https://www.stroke.org/en/stroke-support-group-finder",
			Description: "Find a local or online survivor support group.",
		},
		{
			ID:          "aphasia-association",
			Name:        "National Aphasia Association",
			Category:    CategoryTherapy,
			URL:         "https://www.aphasia.org",
			Description: "Resources for language recovery after stroke.",
		},
		{
			ID:          "caregiver-line",
			Name:        "Family Caregiver Support Line",
			Category:    CategoryCounseling,
			Phone:       "1-855-227-3640",
			Description: "Guidance for family members supporting recovery.",
		},
	}
}
