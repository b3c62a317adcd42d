package services

// Services defined in this package:
// - AuthService: login and logout against the static account table
// - UserService: alumni directory and student records
// - OpportunityService: postings, applications and their status
// - EventService: events and RSVPs
// - MessageService: direct messages and live delivery
// - AdminService: analytics, audit trail and CSV export
// - AuditRecorder: appends audit entries for sensitive actions
