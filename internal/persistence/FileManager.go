package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"addrbook/internal/models"
	"addrbook/internal/persistence/interfaces"
	"addrbook/internal/providers"
)

// FileManager reads and writes directory snapshots.
type FileManager struct {
	compressor interfaces.CompressorInterface
	readers    map[string]interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileManager(compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *FileManager {
	return &FileManager{
		compressor: compressor,
		readers:    map[string]interfaces.CompressorInterface{compressor.Name(): compressor},
		logger:     logger,
		metrics:    metrics,
	}
}

// SaveToFile writes the directory to fileName through a temporary file that
// is synced and renamed into place, so readers only ever see a complete
// snapshot.
func (f *FileManager) SaveToFile(directory *models.Directory, fileName string) error {
	start := time.Now()
	defer func() { f.metrics.ObservePersistenceDuration("save", time.Since(start)) }()

	jsonData, err := json.Marshal(directory.Snapshot())
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(fileName); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmpFile := fileName + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
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

	if err = os.Rename(tmpFile, fileName); err != nil {
		os.Remove(tmpFile)
		return err
	}

	f.logger.Debugf(providers.TypeStorage, "Saved %d contacts to %s (%s, %d bytes)", directory.Len(), fileName, f.compressor.Name(), len(data))
	return nil
}

// LoadFromFile reads a snapshot. A missing file yields an empty directory;
// anything that cannot be decoded into a valid directory is reported as a
// corrupt_store error.
func (f *FileManager) LoadFromFile(fileName string) (*models.Directory, error) {
	start := time.Now()
	defer func() { f.metrics.ObservePersistenceDuration("load", time.Since(start)) }()

	data, err := os.ReadFile(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.logger.Infof(providers.TypeStorage, "No snapshot at %s, starting with an empty address book", fileName)
			return models.NewDirectory(), nil
		}
		return nil, models.CorruptStoreError("load", fileName, err)
	}

	compressor, err := f.readerFor(DetectCompression(data))
	if err != nil {
		return nil, models.CorruptStoreError("load", fileName, err)
	}

	decompressedData, err := compressor.Decompress(data)
	if err != nil {
		return nil, models.CorruptStoreError("load", fileName, err)
	}

	var snapshot models.SnapshotV1
	if err := json.Unmarshal(decompressedData, &snapshot); err != nil {
		return nil, models.CorruptStoreError("load", fileName, err)
	}

	directory, err := models.DirectoryFromSnapshot(&snapshot)
	if err != nil {
		return nil, models.CorruptStoreError("load", fileName, err)
	}

	f.logger.Infof(providers.TypeStorage, "Loaded %d contacts from %s (%s)", directory.Len(), fileName, compressor.Name())
	return directory, nil
}

// Quarantine moves an unreadable snapshot out of the way so the next save
// does not overwrite it. It returns the new location.
func (f *FileManager) Quarantine(fileName string) (string, error) {
	target := fmt.Sprintf("%s.corrupt-%s", fileName, time.Now().UTC().Format("20060102T150405"))
	if err := os.Rename(fileName, target); err != nil {
		return "", err
	}
	f.logger.Warnf(providers.TypeStorage, "Moved unreadable snapshot %s to %s", fileName, target)
	return target, nil
}

func (f *FileManager) Close() {
	for _, c := range f.readers {
		c.Close()
	}
}

func (f *FileManager) readerFor(name string) (interfaces.CompressorInterface, error) {
	if c, ok := f.readers[name]; ok {
		return c, nil
	}
	c, err := NewCompressor(name)
	if err != nil {
		return nil, err
	}
	f.readers[name] = c
	return c, nil
}
