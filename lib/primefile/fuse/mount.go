// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package fuse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"golang.org/x/sys/unix"

	"github.com/mathfs/mathfs/lib/primefile"
)

// DefaultFsName is the filesystem name reported in /proc/mounts.
const DefaultFsName = "mathfs"

// devicePath is the FUSE character device the kernel exposes.
const devicePath = "/dev/fuse"

// primeMode is the permission set of the prime file: writable by the
// owner, readable by everyone.
const primeMode = 0o644

// Options configures the FUSE mount.
type Options struct {
	// Mountpoint is the directory where the filesystem is mounted.
	Mountpoint string

	// File serves reads and writes of the prime entry.
	File *primefile.File

	// FsName is reported as the mount source. Empty uses
	// DefaultFsName.
	FsName string

	// AllowOther permits other users (including root) to access
	// the mount. Requires user_allow_other in /etc/fuse.conf.
	AllowOther bool

	// Logger receives diagnostic messages. If nil, a logger that only
	// reports errors is used.
	Logger *slog.Logger

	// owner is the mounting user, reported as the owner of every
	// entry so the owner-write permission applies to them.
	owner fuse.Owner
}

// Available reports whether the FUSE device can be opened for reading
// and writing by this process.
func Available() error {
	if err := unix.Access(devicePath, unix.R_OK|unix.W_OK); err != nil {
		return fmt.Errorf("FUSE device %s is not accessible: %w", devicePath, err)
	}
	return nil
}

// Mount mounts the prime filesystem at the configured mountpoint. The
// caller must call Unmount on the returned Server when done. The
// mountpoint directory is created if it does not exist.
func Mount(options Options) (*fuse.Server, error) {
	if options.Mountpoint == "" {
		return nil, fmt.Errorf("mountpoint is required")
	}
	if options.File == nil {
		return nil, fmt.Errorf("file is required")
	}

	if options.FsName == "" {
		options.FsName = DefaultFsName
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	}
	options.owner = fuse.Owner{
		Uid: uint32(os.Getuid()),
		Gid: uint32(os.Getgid()),
	}

	if err := os.MkdirAll(options.Mountpoint, 0o755); err != nil {
		return nil, fmt.Errorf("creating mountpoint %s: %w", options.Mountpoint, err)
	}

	root := &rootNode{options: &options}

	entryTimeout := 1 * time.Second
	attrTimeout := 1 * time.Second
	negativeTimeout := 100 * time.Millisecond

	server, err := gofuse.Mount(options.Mountpoint, root, &gofuse.Options{
		EntryTimeout:    &entryTimeout,
		AttrTimeout:     &attrTimeout,
		NegativeTimeout: &negativeTimeout,
		MountOptions: fuse.MountOptions{
			FsName:     options.FsName,
			Name:       "mathfs",
			AllowOther: options.AllowOther,
			// Let the kernel enforce the 0644 mode of the prime file.
			Options: []string{"default_permissions"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mounting FUSE filesystem at %s: %w", options.Mountpoint, err)
	}

	options.Logger.Info("mathfs FUSE filesystem mounted",
		"mountpoint", options.Mountpoint,
		"sequencing", options.File.Sequencing().String(),
	)
	return server, nil
}

// rootNode is the filesystem root. Its only child is the prime file;
// lookups of any other name fail with ENOENT.
type rootNode struct {
	gofuse.Inode
	options *Options
}

var _ gofuse.InodeEmbedder = (*rootNode)(nil)
var _ gofuse.NodeOnAdder = (*rootNode)(nil)
var _ gofuse.NodeGetattrer = (*rootNode)(nil)
var _ gofuse.NodeStatfser = (*rootNode)(nil)

func (r *rootNode) OnAdd(ctx context.Context) {
	primeFile := r.NewPersistentInode(ctx, &primeNode{options: r.options}, gofuse.StableAttr{Mode: syscall.S_IFREG})
	r.AddChild(primefile.Name, primeFile, true)
}

func (r *rootNode) Getattr(_ context.Context, _ gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = syscall.S_IFDIR | 0o755
	out.Owner = r.options.owner
	return 0
}

// Statfs reports an empty filesystem: nothing is stored.
func (r *rootNode) Statfs(_ context.Context, out *fuse.StatfsOut) syscall.Errno {
	*out = fuse.StatfsOut{NameLen: 255, Bsize: 4096}
	return 0
}

// primeNode is the prime file. It has no state of its own; every
// operation goes to the shared primefile.File.
type primeNode struct {
	gofuse.Inode
	options *Options
}

var _ gofuse.InodeEmbedder = (*primeNode)(nil)
var _ gofuse.NodeGetattrer = (*primeNode)(nil)
var _ gofuse.NodeSetattrer = (*primeNode)(nil)
var _ gofuse.NodeOpener = (*primeNode)(nil)
var _ gofuse.NodeReader = (*primeNode)(nil)
var _ gofuse.NodeWriter = (*primeNode)(nil)

func (p *primeNode) Getattr(_ context.Context, _ gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	p.fillAttr(&out.Attr)
	return 0
}

// Setattr accepts truncation, which the kernel sends for O_TRUNC
// opens, without doing anything: the prime file has no stored
// content to truncate. Other attribute changes are ignored too.
func (p *primeNode) Setattr(_ context.Context, _ gofuse.FileHandle, _ *fuse.SetAttrIn, out *fuse.AttrOut) syscall.Errno {
	p.fillAttr(&out.Attr)
	return 0
}

func (p *primeNode) fillAttr(out *fuse.Attr) {
	out.Mode = syscall.S_IFREG | primeMode
	out.Size = 0
	out.Nlink = 1
	out.Owner = p.options.owner
}

// Open returns no file handle: the prime file keeps no per-open
// state. Direct I/O keeps the kernel from caching served values.
func (p *primeNode) Open(_ context.Context, _ uint32) (gofuse.FileHandle, uint32, syscall.Errno) {
	return nil, fuse.FOPEN_DIRECT_IO, 0
}

func (p *primeNode) Read(_ context.Context, _ gofuse.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	count, err := p.options.File.ReadInto(dest, off)
	if err != nil {
		p.options.Logger.Debug("prime read failed",
			"offset", off,
			"error", err,
		)
		return nil, primefile.Errno(err)
	}
	return fuse.ReadResultData(dest[:count]), 0
}

func (p *primeNode) Write(_ context.Context, _ gofuse.FileHandle, data []byte, off int64) (uint32, syscall.Errno) {
	written, err := p.options.File.Write(off, data)
	if err != nil {
		p.options.Logger.Debug("prime write rejected",
			"offset", off,
			"length", len(data),
			"error", err,
		)
		return 0, primefile.Errno(err)
	}
	p.options.Logger.Debug("prime counter set", "value", p.options.File.Value())
	return uint32(written), 0
}
