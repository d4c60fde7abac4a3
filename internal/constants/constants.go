package constants

import "time"

// Exchanges and routing keys
const (
	LeadEventsExchange       = "leads_events"
	RoutingKeyLeadSubmitted  = "lead.submitted"
	LeadSubmittedEventType   = "LeadSubmittedEvent"
	LeadSubmittedEventSchema = "1.0.0"
)

// Cookies
const (
	AdminSessionCookie  = "admin_session"
	EnquiryMarkerCookie = "enquiry_marker"
	AdminLoginPath      = "/admin/login"
	AdminDashboardPath  = "/admin/dashboard"
	HomePath            = "/"
	TraceIDHeader       = "X-Trace-ID"
	EventTraceIDHeader  = "x-trace-id"
)

const (
	FeaturedPropertiesLimit = 6
	DashboardRecentLeads    = 5
	DashboardLeadsWindow    = 30 * 24 * time.Hour
	LeadEventPublishTimeout = 10 * time.Second
)

// User-facing messages
const (
	MsgEnquirySubmitted   = "Thank you! We will contact you soon."
	MsgContactSubmitted   = "Message sent successfully! We will get back to you soon."
	MsgMarkerDuplicate    = "You have submitted an enquiry recently. Please wait before submitting again."
	MsgPropertyDuplicate  = "You have already enquired about this property recently."
	MsgGeneralDuplicate   = "You have already sent us an enquiry recently."
	MsgStoreDuplicate     = "You have already submitted this enquiry"
	MsgPersistenceFailure = "Database error. Please try again."
	MsgUnknownFailure     = "Something went wrong. Please try again."
	MsgSlugConflict       = "A property with similar title already exists. Please modify the title."
)
