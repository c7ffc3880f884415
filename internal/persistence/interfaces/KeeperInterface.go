package interfaces

type KeeperInterface interface {
	Restore() error
	Persist() error
	Close()
}
