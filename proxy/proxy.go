package proxy

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageProxy embeds image.Image, adding conversion to and from Float2D arrays and PNG encoding.
// Metadata can be appended at each stage to create a processing history
//
//	metadata  add a line of text when the image is modified to track its history
//	Path      the original file path if the ImageProxy was loaded from a resource
type ImageProxy struct {
	image.Image
	Config   image.Config
	metadata []string
	Path     string
}

// adds another line of metadata to the ImageProxy
func (ip *ImageProxy) AddMetadata(data string) ImageProxy {
	if ip.metadata == nil {
		ip.metadata = make([]string, 0)
	}
	t := time.Now().Format("2006-01-02 15:04:05")
	ip.metadata = append(ip.metadata, t+"  "+data)
	return *ip
}

// returns all metadata created for the ImageProxy as a single string.
func (ip ImageProxy) AllMetadata() string {
	s := ""
	for i := 0; i < len(ip.metadata); i++ {
		s += ip.metadata[i] + "\n"
	}
	return s
}

// returns the type of the underlying image.Image
func (ip ImageProxy) Type() string {
	Type := "Unknown"
	switch ip.Image.(type) {
	case *image.Gray:
		Type = "Gray 8 bit"
	case *image.Gray16:
		Type = "Gray 16 bit"
	case *image.RGBA:
		Type = "RGBA 8 bit"
	case *image.NRGBA:
		Type = "NRGBA 8 bit"
	case *image.RGBA64:
		Type = "RGBA 16 bit"
	case *image.NRGBA64:
		Type = "NRGBA 16 bit"
	case *image.YCbCr:
		Type = "YCbCr"
	case *image.CMYK:
		Type = "CMYK"
	case *image.Paletted:
		Type = "Paletted"
	}
	return Type
}

// loads an image from a file
func (ip *ImageProxy) LoadFromFile(path string) error {
	r, err := os.Open(path)
	if err != nil {
		return errors.New("could not open " + path + ": " + err.Error())
	}
	defer r.Close()
	if err := ip.LoadFromReader(r); err != nil {
		return err
	}
	ip.Path = path
	return nil
}

// decodes PNG, JPEG, GIF, BMP, TIFF or WebP data
func (ip *ImageProxy) LoadFromReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.New("read image: " + err.Error())
	}
	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return errors.New("decode config: " + err.Error())
	}
	im, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return errors.New("decode image: " + err.Error())
	}
	ip.Config = config
	ip.Image = im
	ip.AddMetadata("Decoded " + format)
	return nil
}

// converts the image to 8-bit luminance (Rec. 601 weights) and returns it as a 255-scale Float2D
func (ip *ImageProxy) LuminanceAsFloat() (*Float2D, error) {
	if ip.Image == nil {
		return nil, errors.New("no image loaded")
	}
	b := ip.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, errors.New("image has either zero rows or zero columns")
	}
	gray := imaging.Grayscale(ip.Image)
	luma := make([]uint8, w*h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			luma[j*w+i] = gray.Pix[j*gray.Stride+4*i]
		}
	}
	f := ListToGrid(luma, w).AsFloat()
	return &f, nil
}

// generates an 8-bit grayscale image from 255-scale floats, clipped to 0..255
func (ip *ImageProxy) LoadFromFloats(floatIn Float2D) error {
	h, w := floatIn.Dims()
	if w == 0 || h == 0 {
		return errors.New("array has either zero rows or zero columns")
	}
	d := floatIn.ToDenseMatrix()
	im := NewMatrixImage(&d).Gray()
	ip.Image = im
	ip.Config = image.Config{ColorModel: im.ColorModel(), Height: h, Width: w}
	ip.AddMetadata("Gray 8 created from floating array")
	return nil
}

// writes the image as PNG
func (ip ImageProxy) EncodePNG(w io.Writer) error {
	if ip.Image == nil {
		return errors.New("no image loaded")
	}
	return imaging.Encode(w, ip.Image, imaging.PNG)
}

// returns the image as PNG bytes
func (ip ImageProxy) PNGBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := ip.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// returns the PNG bytes of the image in standard base64, as used in JSON documents
func (ip ImageProxy) Base64PNG() (string, error) {
	b, err := ip.PNGBytes()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// saves the image as a PNG file
func (ip ImageProxy) SavePNG(path string) error {
	if ip.Image == nil {
		return errors.New("no image loaded")
	}
	return imaging.Save(ip.Image, path)
}
