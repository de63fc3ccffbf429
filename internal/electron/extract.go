package electron

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zkat/electron-collider/internal/messages"
)

// extractZip unpacks archivePath into dest. Entries are confined to dest,
// and symlink entries are recreated as symlinks so the darwin app bundle
// survives extraction intact.
func extractZip(archivePath string, dest string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf(messages.ElectronOpenArchiveFmt, archivePath, err)
	}
	defer func() { _ = reader.Close() }()

	for _, entry := range reader.File {
		if err := extractZipEntry(entry, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractZipEntry(entry *zip.File, dest string) error {
	target, err := safeJoin(dest, entry.Name)
	if err != nil {
		return err
	}

	mode := entry.Mode()
	switch {
	case mode.IsDir():
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf(messages.ElectronExtractEntryFmt, entry.Name, err)
		}
		return nil
	case mode&os.ModeSymlink != 0:
		linkTarget, err := readZipEntry(entry)
		if err != nil {
			return fmt.Errorf(messages.ElectronExtractEntryFmt, entry.Name, err)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf(messages.ElectronExtractEntryFmt, entry.Name, err)
		}
		if err := os.Symlink(string(linkTarget), target); err != nil {
			return fmt.Errorf(messages.ElectronExtractEntryFmt, entry.Name, err)
		}
		return nil
	default:
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf(messages.ElectronExtractEntryFmt, entry.Name, err)
		}
		perm := mode.Perm()
		if perm == 0 {
			perm = 0o644
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
		if err != nil {
			return fmt.Errorf(messages.ElectronExtractEntryFmt, entry.Name, err)
		}
		in, err := entry.Open()
		if err != nil {
			_ = out.Close()
			return fmt.Errorf(messages.ElectronExtractEntryFmt, entry.Name, err)
		}
		_, copyErr := io.Copy(out, in)
		_ = in.Close()
		closeErr := out.Close()
		if copyErr != nil {
			return fmt.Errorf(messages.ElectronExtractEntryFmt, entry.Name, copyErr)
		}
		if closeErr != nil {
			return fmt.Errorf(messages.ElectronExtractEntryFmt, entry.Name, closeErr)
		}
		return nil
	}
}

func readZipEntry(entry *zip.File) ([]byte, error) {
	in, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()
	return io.ReadAll(in)
}

// safeJoin joins name under root, rejecting entries that escape it.
func safeJoin(root string, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	cleanRoot := filepath.Clean(root)
	if target != cleanRoot && !strings.HasPrefix(target, cleanRoot+string(os.PathSeparator)) {
		return "", fmt.Errorf(messages.ElectronBadArchiveEntryFmt, name)
	}
	return target, nil
}
