package domain

// Contact is one phonebook row, keyed by the normalized phone index.
// A row is created lazily on first lookup and updated in place when
// re-resolved against the CRM.
type Contact struct {
	ID         int64  `json:"id"`
	Number     string `json:"number"`
	NumberRep  string `json:"number_rep"`
	CallID     string `json:"call_id"`
	Client     string `json:"client"`
	Contact    string `json:"contact"`
	Ref        string `json:"ref"`
	IsEmployee bool   `json:"is_employee"`
	Created    int64  `json:"created"`
	Changed    int64  `json:"changed"`
}
