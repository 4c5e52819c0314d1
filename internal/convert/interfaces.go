package convert

import (
	"github.com/imgshift/imgshift/internal/model"
)

// Converter defines the interface for the conversion service.
type Converter interface {
	SetUpdateCallback(func(*model.ConversionTask))
	Submit(req Request) (*model.ConversionTask, error)
	GetTask(id string) (*model.ConversionTask, bool)
	GetAllTasks() []*model.ConversionTask
	IsBusy() bool
	RemoveTask(id string) error

	// SetDownloadsDirectory sets the directory converted images are saved to
	SetDownloadsDirectory(dir string)
}
