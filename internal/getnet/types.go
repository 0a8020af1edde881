package getnet

import "encoding/json"

// Gateway status values.
const (
	StatusOK       = "OK"
	StatusFailed   = "FAILED"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusPending  = "PENDING"
)

// Amount is expressed in the currency's unit; CLP has no decimals.
type Amount struct {
	Currency string `json:"currency"`
	Total    int64  `json:"total"`
}

type Payment struct {
	Reference   string `json:"reference"`
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
}

// SessionRequest is the body of POST /api/session.
type SessionRequest struct {
	Auth       Auth    `json:"auth"`
	Locale     string  `json:"locale"`
	Payment    Payment `json:"payment"`
	Expiration string  `json:"expiration"`
	ReturnURL  string  `json:"returnUrl"`
	IPAddress  string  `json:"ipAddress"`
	UserAgent  string  `json:"userAgent"`
}

// Status is the gateway's result envelope, shared by session responses and
// notifications.
type Status struct {
	Status  string `json:"status"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
	Date    string `json:"date,omitempty"`
}

// Reason is a gateway reason code. The gateway sends it either as a string
// ("PC") or as a bare number (401).
type Reason string

func (r *Reason) UnmarshalJSON(b []byte) error {
	s, err := scalarString(b)
	if err != nil {
		return err
	}
	*r = Reason(s)
	return nil
}

// RequestID identifies a session at the gateway. Like Reason it arrives either
// as a number or as a string.
type RequestID string

func (id *RequestID) UnmarshalJSON(b []byte) error {
	s, err := scalarString(b)
	if err != nil {
		return err
	}
	*id = RequestID(s)
	return nil
}

// MarshalJSON writes integer ids back as JSON numbers and anything else as a
// string.
func (id RequestID) MarshalJSON() ([]byte, error) {
	if id.integer() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id RequestID) String() string { return string(id) }

func (id RequestID) integer() bool {
	if id == "" || (len(id) > 1 && id[0] == '0') {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// scalarString reads a JSON string or number as text. null reads as "".
func scalarString(b []byte) (string, error) {
	if len(b) > 0 && b[0] == '"' {
		var s string
		err := json.Unmarshal(b, &s)
		return s, err
	}
	if string(b) == "null" {
		return "", nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// SessionResponse is a decoded session-creation answer. Raw keeps the body as
// received so callers can pass it on for diagnosis.
type SessionResponse struct {
	Status     Status    `json:"status"`
	RequestID  RequestID `json:"requestId,omitempty"`
	ProcessURL string    `json:"processUrl,omitempty"`

	HTTPStatus int             `json:"-"`
	Raw        json.RawMessage `json:"-"`
}

// Succeeded reports whether the gateway created the session.
func (r *SessionResponse) Succeeded() bool {
	return r.Status.Status == StatusOK && r.ProcessURL != ""
}
