package build

import "errors"

var (
	ErrImageBuild          = errors.New("image build failed")
	ErrContainerRun        = errors.New("build container failed")
	ErrExtract             = errors.New("artifact extraction failed")
	ErrFileSystemOperation = errors.New("file system operation failed")
)
