package interfaces

type CompressorInterface interface {
	Name() string
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}
