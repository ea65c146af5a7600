package domain

import "fmt"

// ErrTemplateNotFound is returned when a template doesn't exist
type ErrTemplateNotFound struct {
	ID string
}

func (e *ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("template not found: %s", e.ID)
}

// ErrTemplateExists is returned when creating a template whose id is
// already taken.
type ErrTemplateExists struct {
	ID string
}

func (e *ErrTemplateExists) Error() string {
	return fmt.Sprintf("template already exists: %s", e.ID)
}

// ErrUploadFailed is returned when the file manager rejects or fails an
// image upload.
type ErrUploadFailed struct {
	Reason string
}

func (e *ErrUploadFailed) Error() string {
	return fmt.Sprintf("upload failed: %s", e.Reason)
}
