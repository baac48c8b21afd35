package manager

// Manager is a SalesDrive user responsible for a client
type Manager struct {
	ID    int    `json:"id"`
	FName string `json:"fName"`
	LName string `json:"lName"`
	Phone string `json:"phone"`
}

// Client is the contact the phone number belongs to
type Client struct {
	ID      int    `json:"id"`
	FName   string `json:"fName"`
	LName   string `json:"lName"`
	MName   string `json:"mName"`
	Company string `json:"company"`
}

// LookupResponse is the body of the manager-by-phone endpoint. On failure
// Status is "error" and only Message is set.
type LookupResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Manager *Manager `json:"manager,omitempty"`
	Client  *Client  `json:"client,omitempty"`
}

// Match is a successful lookup
type Match struct {
	Manager Manager `json:"manager"`
	Client  *Client `json:"client,omitempty"`
}
