package constant

// Document processing statuses. Terminal states are Processed and Error.
const (
	DocumentStatusPending    = "pending"
	DocumentStatusProcessing = "processing"
	DocumentStatusProcessed  = "processed"
	DocumentStatusError      = "error"
)

// Document types a tenant can upload.
const (
	DocumentTypeContract = "contract"
	DocumentTypeEstimate = "estimate"
	DocumentTypeAddendum = "addendum"
	DocumentTypeProposal = "proposal"
	DocumentTypeInvoice  = "invoice"
	DocumentTypeQuote    = "quote"
	DocumentTypeOther    = "other"
)

// FormatExtractableTypes are the document types worth mining for formatting
// conventions; other types still get chunked and embedded.
var FormatExtractableTypes = []string{
	DocumentTypeContract,
	DocumentTypeEstimate,
	DocumentTypeProposal,
	DocumentTypeInvoice,
	DocumentTypeQuote,
}

// IsFormatExtractable reports whether format extraction runs for a type.
func IsFormatExtractable(docType string) bool {
	for _, t := range FormatExtractableTypes {
		if t == docType {
			return true
		}
	}
	return false
}

// PricingExtractableTypes are the document types that carry line items and
// totals worth mining into the pricing history.
var PricingExtractableTypes = []string{
	DocumentTypeEstimate,
	DocumentTypeAddendum,
	DocumentTypeInvoice,
	DocumentTypeQuote,
}

// IsPricingExtractable reports whether pricing extraction runs for a type.
func IsPricingExtractable(docType string) bool {
	for _, t := range PricingExtractableTypes {
		if t == docType {
			return true
		}
	}
	return false
}

// AllowedMimeTypes maps accepted upload content types to a short form used
// in logs and storage metadata.
var AllowedMimeTypes = map[string]string{
	"application/pdf": "pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       "xlsx",
	"text/plain": "txt",
}

// DocumentProcessTopic is the internal queue topic for document ingest jobs.
const DocumentProcessTopic = "DOCUMENT_PROCESS"
