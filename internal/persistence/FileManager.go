package persistence

import (
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"surveysync/internal/models"
	"surveysync/internal/persistence/interfaces"
	"surveysync/internal/providers"
)

var ErrUnknownVersion = errors.New("unknown state file version")

// StateSource is the component whose state is written to disk.
type StateSource interface {
	ExportState() *models.State
	ImportState(state *models.State)
}

type FileManager struct {
	source     StateSource
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, source StateSource, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		source:     source,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	state := f.source.ExportState()

	jsonData, err := json.Marshal(state)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores the state written by SaveToFile. A missing file is
// not an error.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var state models.State
	if err := json.Unmarshal(decompressedData, &state); err != nil {
		return err
	}
	if state.Version != models.StateVersion {
		return fmt.Errorf("%w: %d", ErrUnknownVersion, state.Version)
	}
	if state.Snapshot == nil {
		state.Snapshot = models.EmptySnapshot()
	}
	if state.Snapshot.Offers == nil {
		state.Snapshot.Offers = []models.SurveyOffer{}
	}

	f.source.ImportState(&state)
	f.logger.Infof(providers.TypeApp, "Restored %d surveys and %d unpaid transactions from %s",
		len(state.Snapshot.Offers), len(state.Unpaid), fileName)
	return nil
}
