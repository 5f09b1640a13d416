package session

import (
	"errors"

	"datahunt/internal/api"
	"datahunt/internal/logging"
	"datahunt/internal/upload"
)

// UploadStatus is the lifecycle of one upload attempt.
type UploadStatus int

const (
	UploadIdle UploadStatus = iota
	UploadInProgress
	UploadSucceeded
	UploadFailed
)

// UploadState is the upload view.
type UploadState struct {
	File    *upload.File
	Source  string
	Status  UploadStatus
	Message Message
}

// FileChosen delivers the result of inspecting a picked or dropped file.
type FileChosen struct {
	File *upload.File
	Err  error
}

// FileCleared removes the selected file.
type FileCleared struct{}

// SourceChosen sets the data source type.
type SourceChosen struct{ Source string }

// UploadRequested starts the upload ("Scan & Map").
type UploadRequested struct{}

// UploadCompleted delivers the outcome of a PostUpload effect.
type UploadCompleted struct {
	Summary *api.UploadSummary
	Err     error
}

func (FileChosen) isEvent()      {}
func (FileCleared) isEvent()     {}
func (SourceChosen) isEvent()    {}
func (UploadRequested) isEvent() {}
func (UploadCompleted) isEvent() {}

// PostUpload asks the caller to send File with Source and reply with
// UploadCompleted.
type PostUpload struct {
	File   upload.File
	Source string
}

func (PostUpload) isEffect() {}

// ReduceUpload applies ev to s.
func ReduceUpload(s UploadState, ev Event) (UploadState, []Effect) {
	switch ev := ev.(type) {
	case FileChosen:
		if ev.Err != nil {
			s.File = nil
			if errors.Is(ev.Err, upload.ErrInvalidType) {
				s.Message = warning(upload.MsgInvalidType)
			} else {
				s.Message = warning(ev.Err.Error())
			}
			return s, nil
		}
		s.File = ev.File
		s.Status = UploadIdle
		s.Message = Message{}

	case FileCleared:
		s.File = nil

	case SourceChosen:
		s.Source = ev.Source
		s.Message = Message{}

	case UploadRequested:
		if s.Status == UploadInProgress {
			return s, nil
		}
		if s.File == nil {
			s.Message = warning(upload.MsgNoFile)
			return s, nil
		}
		if s.Source == "" {
			s.Message = warning(upload.MsgNoSource)
			return s, nil
		}
		s.Status = UploadInProgress
		s.Message = Message{}
		return s, []Effect{PostUpload{File: *s.File, Source: s.Source}}

	case UploadCompleted:
		if ev.Err != nil || ev.Summary == nil {
			logging.UploadError("upload failed: %v", ev.Err)
			s.Status = UploadFailed
			s.Message = failure(api.UserMessage(api.OpUpload, ev.Err))
			return s, nil
		}
		s.Status = UploadSucceeded
		s.Message = success(ev.Summary.Message())
	}
	return s, nil
}
