package services

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"addrbook/internal/models"
	"addrbook/internal/providers"
	"addrbook/internal/structures"
)

// Clock returns the current time. Injected so birthday queries can be
// tested against a fixed date.
type Clock func() time.Time

func NewSystemClock() Clock {
	return time.Now
}

type DirectoryServiceInterface interface {
	AddContact(name, phone string) (created bool, err error)
	ChangePhone(name, oldPhone, newPhone string) error
	GetPhones(name string) ([]string, error)
	RemovePhone(name, phone string) error
	DeleteContact(name string) error
	DescribeAll() []string
	AddBirthday(name, birthday string) error
	GetBirthday(name string) (models.Birthday, bool, error)
	UpcomingBirthdays(horizonDays int) ([]models.UpcomingBirthday, error)
	DefaultHorizon() int
	GetDirectory() *models.Directory
	PutDirectory(d *models.Directory)
	Revision() uint64
}

// DirectoryService owns the live directory of the process. Every mutation
// goes through it so the revision counter, the birthday cache and the
// contacts gauge stay in step with the data.
type DirectoryService struct {
	directory *models.Directory
	revision  uint64
	horizon   int
	clock     Clock
	cache     providers.CacheProviderInterface
	metrics   providers.MetricsProviderInterface
	logger    providers.Logger
}

func NewDirectoryService(conf *structures.Config, clock Clock, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) DirectoryServiceInterface {
	return &DirectoryService{
		directory: models.NewDirectory(),
		horizon:   conf.Birthdays.HorizonDays,
		clock:     clock,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
	}
}

// AddContact creates the contact if needed and attaches phone to it. A
// new contact is only stored once the phone is valid.
func (ds *DirectoryService) AddContact(name, phone string) (bool, error) {
	if _, err := models.NewPhoneNumber(phone); err != nil {
		return false, err
	}
	_, existed := ds.directory.Find(name)
	record, err := ds.directory.AddRecord(name)
	if err != nil {
		return false, err
	}
	if err := record.AddPhone(phone); err != nil {
		return false, err
	}
	ds.touch()
	return !existed, nil
}

func (ds *DirectoryService) ChangePhone(name, oldPhone, newPhone string) error {
	record, err := ds.find("change phone", name)
	if err != nil {
		return err
	}
	if err := record.EditPhone(oldPhone, newPhone); err != nil {
		return err
	}
	ds.touch()
	return nil
}

func (ds *DirectoryService) GetPhones(name string) ([]string, error) {
	record, err := ds.find("phone", name)
	if err != nil {
		return nil, err
	}
	return record.Phones(), nil
}

func (ds *DirectoryService) RemovePhone(name, phone string) error {
	record, err := ds.find("remove phone", name)
	if err != nil {
		return err
	}
	record.RemovePhone(phone)
	ds.touch()
	return nil
}

func (ds *DirectoryService) DeleteContact(name string) error {
	if err := ds.directory.Delete(name); err != nil {
		return err
	}
	ds.touch()
	return nil
}

func (ds *DirectoryService) DescribeAll() []string {
	records := ds.directory.Records()
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Describe()
	}
	return out
}

func (ds *DirectoryService) AddBirthday(name, birthday string) error {
	record, err := ds.find("add birthday", name)
	if err != nil {
		return err
	}
	if err := record.SetBirthday(birthday); err != nil {
		return err
	}
	ds.touch()
	return nil
}

func (ds *DirectoryService) GetBirthday(name string) (models.Birthday, bool, error) {
	record, err := ds.find("show birthday", name)
	if err != nil {
		return models.Birthday{}, false, err
	}
	b, ok := record.Birthday()
	return b, ok, nil
}

// UpcomingBirthdays runs the birthday query for today. Results are cached
// per day, horizon and revision, so any mutation invalidates them.
func (ds *DirectoryService) UpcomingBirthdays(horizonDays int) ([]models.UpcomingBirthday, error) {
	today := ds.clock()
	key := fmt.Sprintf("birthdays:%s:%d:%d", today.Format(time.DateOnly), horizonDays, ds.revision)

	if data, ok := ds.cache.Get(key); ok {
		var cached []models.UpcomingBirthday
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		ds.logger.Warnf(providers.TypeCommand, "Dropping unreadable cache entry %s", key)
	}

	result, err := ds.directory.UpcomingBirthdays(today, horizonDays)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(result); err == nil {
		ds.cache.Set(key, data)
	}
	return result, nil
}

func (ds *DirectoryService) DefaultHorizon() int {
	return ds.horizon
}

func (ds *DirectoryService) GetDirectory() *models.Directory {
	return ds.directory
}

func (ds *DirectoryService) PutDirectory(d *models.Directory) {
	ds.directory = d
	ds.touch()
}

func (ds *DirectoryService) Revision() uint64 {
	return ds.revision
}

func (ds *DirectoryService) find(op, name string) (*models.Record, error) {
	record, ok := ds.directory.Find(name)
	if !ok {
		return nil, models.ContactNotFoundError(op)
	}
	return record, nil
}

func (ds *DirectoryService) touch() {
	ds.revision++
	ds.metrics.SetContactsTotal(ds.directory.Len())
}
