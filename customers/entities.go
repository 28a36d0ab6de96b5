package customers

// Interaction is an activity log entry (call, email, meeting...).
type Interaction struct {
	InteractionID   int64      `json:"interactionId,omitempty"`
	InteractionType string     `json:"interactionType,omitempty"`
	Subject         string     `json:"subject,omitempty"`
	Description     string     `json:"description,omitempty"`
	Outcome         string     `json:"outcome,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	InteractionDate string     `json:"interactionDate,omitempty"`
	CreatedAt       string     `json:"createdAt,omitempty"`
	AgentID         FlexString `json:"agentId,omitempty"`
}

type ProjectDetail struct {
	ProjectSubID int64   `json:"projectSubId,omitempty"`
	Name         string  `json:"name,omitempty"`
	Status       string  `json:"status,omitempty"`
	Budget       float64 `json:"budget,omitempty"`
}

type Project struct {
	ProjectID   int64                     `json:"projectId,omitempty"`
	ProjectName string                    `json:"projectName,omitempty"`
	ProjectType string                    `json:"projectType,omitempty"`
	Status      string                    `json:"status,omitempty"`
	Budget      float64                   `json:"budget,omitempty"`
	StartDate   string                    `json:"startDate,omitempty"`
	EndDate     string                    `json:"endDate,omitempty"`
	Details     Collection[ProjectDetail] `json:"projectDetails"`
}

type Opportunity struct {
	OpportunityID     int64   `json:"opportunityId,omitempty"`
	Name              string  `json:"name,omitempty"`
	Stage             string  `json:"stage,omitempty"`
	Amount            float64 `json:"amount,omitempty"`
	Probability       float64 `json:"probability,omitempty"`
	ExpectedCloseDate string  `json:"expectedCloseDate,omitempty"`
}

type Ticket struct {
	TicketID    int64  `json:"ticketId,omitempty"`
	TicketCode  string `json:"ticketCode,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type Document struct {
	DocumentID    int64  `json:"documentId,omitempty"`
	DocumentName  string `json:"documentName,omitempty"`
	DocumentType  string `json:"documentType,omitempty"`
	ProjectID     *int64 `json:"projectId,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
	FileSize      int64  `json:"fileSize,omitempty"`
	FormattedSize string `json:"formattedSize,omitempty"`
}

type Note struct {
	NoteID    int64  `json:"noteId,omitempty"`
	Content   string `json:"content"`
	Author    string `json:"author,omitempty"`
	Tags      Tags   `json:"tags"`
	CreatedAt string `json:"createdAt,omitempty"`
}
