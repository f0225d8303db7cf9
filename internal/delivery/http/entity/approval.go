package entity

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type ApprovalRequest struct {
	Action          string `json:"action" validate:"required,oneofci=approve reject"`
	SchoolID        string `json:"schoolId" validate:"required"`
	SchoolPassword  string `json:"schoolPassword" validate:"required"`
	StudentID       string `json:"studentId" validate:"required"`
	RejectionReason string `json:"rejectionReason" validate:"max=500"`
}

type ApprovalResult struct {
	StudentID string `json:"studentId"`
	Status    string `json:"status"`
}

type SchoolStudentsRequest struct {
	SchoolID       string `json:"schoolId" validate:"required"`
	SchoolPassword string `json:"schoolPassword" validate:"required"`
	Status         string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

type SchoolStudent struct {
	StudentResponse
	Report ReportSummary `json:"report"`
}
