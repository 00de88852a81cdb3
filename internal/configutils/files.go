package configutils

import (
	"io"
	"os"
)

type Filesystem interface {
	Stat(string) (os.FileInfo, error)
	Open(string) (*os.File, error)
}

type OS struct{}

func (OS) Open(name string) (*os.File, error)    { return os.Open(name) }
func (OS) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

type configMerger interface {
	MergeConfig(io.Reader) error
}

var mergeConfig = func(in io.Reader, cm configMerger) error {
	return cm.MergeConfig(in)
}

var fileExists = func(filename string, fs Filesystem) error {
	info, err := fs.Stat(filename)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return ErrConfigFileIsDir
	}

	return nil
}

var loadFile = func(filename string, fs Filesystem) (io.ReadCloser, error) {
	err := fileExists(filename, fs)
	if err != nil {
		return nil, err
	}

	f, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}

	return f, nil
}
