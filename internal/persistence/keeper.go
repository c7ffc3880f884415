package persistence

import (
	"fmt"

	"addrbook/internal/models"
	"addrbook/internal/persistence/interfaces"
	"addrbook/internal/providers"
	"addrbook/internal/services"
	"addrbook/internal/structures"
)

const OnCorruptEmpty = "empty"

// Keeper moves the service's directory to and from the configured snapshot
// file at process start and exit.
type Keeper struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.DirectoryServiceInterface
	fileManager *FileManager
}

func NewKeeper(config *structures.Config, logger providers.Logger, service services.DirectoryServiceInterface, fileManager *FileManager) interfaces.KeeperInterface {
	return &Keeper{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
	}
}

// Restore loads the snapshot into the service. With onCorrupt=empty an
// unreadable snapshot is moved aside and the book starts empty; otherwise
// the corrupt_store error is returned.
func (k *Keeper) Restore() error {
	path := k.config.Persistence.FilePath

	directory, err := k.fileManager.LoadFromFile(path)
	if err != nil {
		if !models.IsKind(err, models.KindCorruptStore) || k.config.Persistence.OnCorrupt != OnCorruptEmpty {
			return err
		}
		k.logger.Errorf(providers.TypeStorage, "Restore error: %s", err)
		if _, qerr := k.fileManager.Quarantine(path); qerr != nil {
			return fmt.Errorf("unable to move aside %s: %w", path, qerr)
		}
		directory = models.NewDirectory()
	}

	k.service.PutDirectory(directory)
	return nil
}

func (k *Keeper) Persist() error {
	path := k.config.Persistence.FilePath

	k.logger.Infof(providers.TypeStorage, "Persisting address book to file %s...", path)
	err := k.fileManager.SaveToFile(k.service.GetDirectory(), path)
	if err != nil {
		k.logger.Errorf(providers.TypeStorage, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

// Close releases the codecs held by the file manager.
func (k *Keeper) Close() {
	k.fileManager.Close()
}
