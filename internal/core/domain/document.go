package domain

import "time"

type DocumentStatus string

const (
	StatusReceived   DocumentStatus = "received"
	StatusProcessing DocumentStatus = "processing"
	StatusProcessed  DocumentStatus = "processed"
	StatusFailed     DocumentStatus = "failed"
)

// Folder is the coarse routing decision made at the mailbox boundary:
// payroll documents come from a known sender, everything else is an invoice.
type Folder string

const (
	FolderPayrolls Folder = "payrolls"
	FolderInvoices Folder = "invoices"
)

// PayrollSubtype is the per-page shape of a payroll document.
type PayrollSubtype string

const (
	SubtypeIKA      PayrollSubtype = "ika"
	SubtypeDebt     PayrollSubtype = "debt"
	SubtypeStandard PayrollSubtype = "standard"
)

// Attachment is one PDF pulled out of an unseen mailbox message.
type Attachment struct {
	Sender   string
	Subject  string
	Filename string
	Data     []byte
}

// Document tracks one ingested attachment through the pipeline.
type Document struct {
	ID         string         `json:"id"`
	Filename   string         `json:"filename"`
	Folder     Folder         `json:"folder"`
	Sender     string         `json:"sender,omitempty"`
	Subject    string         `json:"subject,omitempty"`
	StorageKey string         `json:"storage_key"`
	FileURL    string         `json:"file_url"`
	Status     DocumentStatus `json:"status"`
	Error      string         `json:"error,omitempty"`
	ReceivedAt time.Time      `json:"received_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
