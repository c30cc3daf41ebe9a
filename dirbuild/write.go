package dirbuild

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/signadot/xmod/encode"
)

func (d *Dir) destDir() string {
	if d.DestDir == "" {
		return ""
	}
	return d.path(d.DestDir)
}

func (d *Dir) ensureDestDir() error {
	dest := d.destDir()
	st, err := os.Stat(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return os.MkdirAll(dest, 0755)
		}
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s exists but is not a directory", dest)
	}
	return nil
}

func (d *Dir) writeOut(w io.Writer, r *Result, opts ...encode.EncodeOption) error {
	wc, err := d.writeCloser(w, r)
	if err != nil {
		return err
	}
	if err := encode.Encode(r.Doc, wc, opts...); err != nil {
		wc.Close()
		return err
	}
	if _, err := wc.Write([]byte{'\n'}); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

type nopWriterCloser struct {
	io.Writer
}

func (_ nopWriterCloser) Close() error {
	return nil
}

func (d *Dir) writeCloser(w io.Writer, r *Result) (io.WriteCloser, error) {
	if d.DestDir == "" {
		return nopWriterCloser{Writer: w}, nil
	}
	if err := d.ensureDestDir(); err != nil {
		return nil, err
	}
	fn := r.Out
	n := d.nameCache[fn]
	d.nameCache[fn] = n + 1
	if n != 0 {
		ext := filepath.Ext(fn)
		fn = strings.TrimSuffix(fn, ext) + "-" + strconv.Itoa(n) + ext
	}
	fp := filepath.Join(d.destDir(), fn)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(fp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	r.Out = fp
	return &wc{f: f, w: bufio.NewWriter(f)}, nil
}

type wc struct {
	f *os.File
	w *bufio.Writer
}

func (w *wc) Write(d []byte) (int, error) {
	return w.w.Write(d)
}

func (w *wc) Close() error {
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
