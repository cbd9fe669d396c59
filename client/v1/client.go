package v1

type Client struct {
	Transport   *Transport
	Attendance  *AttendanceEndpoint
	TimeEntries *TimeEntryEndpoint
	Admin       *AdminEndpoint
}

// NewClient initializes the API client
func NewClient(baseURL string, token string) *Client {
	t := NewTransport(baseURL, token)
	return &Client{
		Transport:   t,
		Attendance:  &AttendanceEndpoint{transport: t},
		TimeEntries: &TimeEntryEndpoint{transport: t},
		Admin:       &AdminEndpoint{transport: t},
	}
}
