package country

// CountryResponse represents an interview target country in responses
type CountryResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Flag        string `json:"flag,omitempty"`
	Description string `json:"description,omitempty"`
}

// QuestionResponse represents a practice question in responses
type QuestionResponse struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Category   string   `json:"category"`
	Difficulty int      `json:"difficulty"`
	Tags       []string `json:"tags"`
}
