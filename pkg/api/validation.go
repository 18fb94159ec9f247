package api

import "fmt"

// MaxBatchRoles bounds the number of roles in one skills-gap request.
const MaxBatchRoles = 10

// ValidateSkillsGapBatch checks a batch skills-gap request. It returns
// an *APIError describing the first validation failure, or nil when the
// request is valid.
func ValidateSkillsGapBatch(req *SkillsGapBatchRequest) *APIError {
	if len(req.Roles) == 0 {
		return NewValidationError("At least one role is required")
	}
	if len(req.Roles) > MaxBatchRoles {
		return NewValidationError(fmt.Sprintf("At most %d roles per request", MaxBatchRoles))
	}
	for _, role := range req.Roles {
		if role == "" {
			return NewValidationError("Role names must be non-empty")
		}
	}
	return nil
}

// ValidateResumeApply checks a resume apply request.
func ValidateResumeApply(req *ResumeApplyRequest) *APIError {
	if req.ResumeID == "" {
		return NewValidationError("Missing resume_id")
	}
	if !req.Education && !req.Experience && !req.Skills {
		return NewValidationError("At least one section must be selected")
	}
	return nil
}
