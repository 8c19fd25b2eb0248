package entry

import "strings"

// ValidateCreateInput validates fields required to create an entry.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.ProjectName) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Name) == "" {
		return ErrInvalidInput
	}
	if req.Priority != "" && !ValidPriority(req.Priority) {
		return ErrInvalidInput
	}
	return nil
}

// ValidateUpdateInput validates the fields present in an update request.
func ValidateUpdateInput(req UpdateRequest) error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return ErrInvalidInput
	}
	if req.Priority != nil && !ValidPriority(*req.Priority) {
		return ErrInvalidInput
	}
	if req.Status != nil && !ValidStatus(*req.Status) {
		return ErrInvalidInput
	}
	return nil
}
