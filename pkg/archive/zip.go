// Package archive converts registry tar archives into zip containers.
//
// The conversion is a lossless container transcode: every regular entry's
// path, Unix permission bits, and raw content bytes round-trip unchanged;
// only the container format changes. Zip entries are compressed with
// Zstandard, which is not a stock method of archive/zip, so both the
// writer and the reader side register it explicitly.
package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// ZstdMethod is the zip compression method ID assigned to Zstandard.
const ZstdMethod uint16 = 93

// TarGzToZip re-encodes a gzipped tar archive into a zip container with
// Zstandard-compressed entries. Non-regular entries (directories, links,
// pax headers) are dropped; registry tarballs only carry regular files.
func TarGzToZip(r io.Reader) ([]byte, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	defer gz.Close()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(ZstdMethod, func(w io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(w)
	})

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar entry: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		fh := &zip.FileHeader{Name: hdr.Name, Method: ZstdMethod}
		fh.SetMode(hdr.FileInfo().Mode())

		w, err := zw.CreateHeader(fh)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", hdr.Name, err)
		}
		if _, err := io.Copy(w, tr); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", hdr.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}

// OpenZip opens a zip container produced by [TarGzToZip], with the
// Zstandard decompressor registered so entries can be read back.
func OpenZip(data []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	zr.RegisterDecompressor(ZstdMethod, func(r io.Reader) io.ReadCloser {
		d, err := zstd.NewReader(r)
		if err != nil {
			return &errReadCloser{err}
		}
		return d.IOReadCloser()
	})
	return zr, nil
}

type errReadCloser struct{ err error }

func (e *errReadCloser) Read([]byte) (int, error) { return 0, e.err }
func (e *errReadCloser) Close() error             { return nil }
