//go:build !unix && !windows

package xsink

import (
	"errors"
	"os"
)

type fileID struct{}

var errNoIdentity = errors.New("xsink: file identity not supported on this platform")

func fileIdentity(*os.File) (fileID, error) { return fileID{}, errNoIdentity }

func pathIdentity(string) (fileID, error) { return fileID{}, errNoIdentity }
