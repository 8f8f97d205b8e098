package view

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoViewSet is returned by Render when no entry template was set.
	ErrNoViewSet = errors.New("view file is not yet set")
	// ErrNoOpenBlock is returned by EndBlock when no block is being captured.
	ErrNoOpenBlock = errors.New("end block called without a matching begin block")
)

// InvalidDirectoryError indicates that a search directory does not exist
// or is not a directory at registration time.
type InvalidDirectoryError struct {
	// Path is the directory as it was passed in.
	Path string
	// Err is the underlying stat error, if any.
	Err error
}

func (e *InvalidDirectoryError) Error() string {
	if e == nil {
		return "invalid directory path"
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid directory path %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid directory path %q: not a directory", e.Path)
}

func (e *InvalidDirectoryError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsInvalidDirectory reports whether err is an InvalidDirectoryError.
func IsInvalidDirectory(err error) bool {
	var target *InvalidDirectoryError
	return errors.As(err, &target)
}

// TemplateNotFoundError indicates that resolution exhausted every search directory.
type TemplateNotFoundError struct {
	// Name is the file name that was looked up, extension included.
	Name string
	// Searched lists the candidate paths that were tried, in order.
	Searched []string
}

func (e *TemplateNotFoundError) Error() string {
	if e == nil {
		return "template not found"
	}
	if len(e.Searched) == 0 {
		return fmt.Sprintf("template %q not found", e.Name)
	}
	return fmt.Sprintf("template %q not found (searched %s)", e.Name, strings.Join(e.Searched, ", "))
}

// IsTemplateNotFound reports whether err is a TemplateNotFoundError.
func IsTemplateNotFound(err error) bool {
	var target *TemplateNotFoundError
	return errors.As(err, &target)
}

// UnknownMemberError indicates a call on the context that matched no closure.
type UnknownMemberError struct {
	// Member is the name as it was called.
	Member string
	// Type is the receiver type the call was made on.
	Type string
}

func (e *UnknownMemberError) Error() string {
	if e == nil {
		return "unknown member"
	}
	return fmt.Sprintf("could not call %s on %s", e.Member, e.Type)
}

// IsUnknownMember reports whether err is an UnknownMemberError.
func IsUnknownMember(err error) bool {
	var target *UnknownMemberError
	return errors.As(err, &target)
}

// LayoutCycleError indicates that the layout chain exceeded the depth ceiling,
// which in practice means two layouts name each other as parent.
type LayoutCycleError struct {
	// Depth is the ceiling that was hit.
	Depth int
	// Chain lists the files executed so far, entry first.
	Chain []string
}

func (e *LayoutCycleError) Error() string {
	if e == nil {
		return "layout cycle detected"
	}
	return fmt.Sprintf("layout chain exceeded depth %d: %s", e.Depth, strings.Join(e.Chain, " -> "))
}

// IsLayoutCycle reports whether err is a LayoutCycleError.
func IsLayoutCycle(err error) bool {
	var target *LayoutCycleError
	return errors.As(err, &target)
}

// UnclosedBlockError indicates that a template finished executing while a
// block it opened was still being captured.
type UnclosedBlockError struct {
	// Name is the innermost block left open.
	Name string
	// File is the template that opened it.
	File string
}

func (e *UnclosedBlockError) Error() string {
	if e == nil {
		return "unclosed block"
	}
	return fmt.Sprintf("block %q opened in %s was never closed", e.Name, e.File)
}

// IsUnclosedBlock reports whether err is an UnclosedBlockError.
func IsUnclosedBlock(err error) bool {
	var target *UnclosedBlockError
	return errors.As(err, &target)
}
