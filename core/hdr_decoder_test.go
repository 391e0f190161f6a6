package core

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/kpfaulkner/radiance-go/options"
	"github.com/kpfaulkner/radiance-go/testcommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// knownImage is an 8x2 file: row 0 written with literals, row 1 with runs.
func knownImage() ([]byte, []uint8) {
	row0 := make([][4]byte, 8)
	for x := range row0 {
		row0[x] = [4]byte{byte(x), byte(10 + x), byte(20 + x), byte(128 + x)}
	}
	row1 := [4]byte{200, 100, 50, 130}

	data := testcommon.Concat(
		testcommon.Header([]string{"FORMAT=32-bit_rle_rgbe", "EXPOSURE=2"}, 2, 8),
		testcommon.LiteralScanline(row0),
		testcommon.UniformScanline(8, row1),
	)

	var expected []uint8
	for _, p := range row0 {
		expected = append(expected, p[:]...)
	}
	for x := 0; x < 8; x++ {
		expected = append(expected, row1[:]...)
	}
	return data, expected
}

func TestDecode(t *testing.T) {
	data, expected := knownImage()

	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Equal(t, expected, img.Pixels)
	assert.Equal(t, "32-bit_rle_rgbe", img.Header.Format)
	assert.Equal(t, 2.0, img.Header.Exposure)
	assert.True(t, img.Header.SignatureValid)
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	data, expected := knownImage()
	data = append(data, 0xde, 0xad, 0xbe, 0xef)

	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, expected, img.Pixels)
}

func TestDecodeFailures(t *testing.T) {

	for _, tc := range []struct {
		name      string
		data      []byte
		opts      []HDRDecoderOption
		expectErr error
	}{
		{
			name:      "bad signature",
			data:      []byte("P6\n8 1\n255\n"),
			expectErr: ErrInvalidSignature,
		},
		{
			name:      "width below RLE minimum",
			data:      testcommon.Header(nil, 1, 5),
			expectErr: ErrUnsupportedScanlineEncoding,
		},
		{
			name:      "width above RLE maximum",
			data:      testcommon.Header(nil, 1, 32768),
			expectErr: ErrUnsupportedScanlineEncoding,
		},
		{
			name: "run overruns row",
			data: testcommon.Concat(
				testcommon.Header(nil, 1, 8),
				testcommon.ScanlineMarker(8),
				testcommon.RunPacket(9, 1),
				make([]byte, 8),
			),
			expectErr: ErrCorruptScanlineData,
		},
		{
			name:      "missing pixel data",
			data:      testcommon.Header(nil, 2, 8),
			expectErr: ErrTruncatedInput,
		},
		{
			name:      "pixel limit",
			data:      testcommon.UniformImage(16, 16, [4]byte{1, 1, 1, 128}),
			opts:      []HDRDecoderOption{WithMaxPixels(255)},
			expectErr: ErrMalformedHeader,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			img, err := Decode(tc.data, tc.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expectErr)
			assert.Nil(t, img)
		})
	}
}

func TestDecodeRejectsBodyTooShortForHeader(t *testing.T) {
	for _, tc := range []struct {
		name   string
		height int
		width  int
		body   []byte
	}{
		{name: "huge dimensions", height: 2000000000, width: 32767, body: []byte{2, 2, 0x7f, 0xff}},
		{name: "one row short", height: 3, width: 8, body: testcommon.Concat(
			testcommon.UniformScanline(8, [4]byte{1, 2, 3, 128}),
			testcommon.UniformScanline(8, [4]byte{1, 2, 3, 128}),
		)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			header := testcommon.Header([]string{"FORMAT=32-bit_rle_rgbe"}, tc.height, tc.width)
			data := testcommon.Concat(header, tc.body)

			img, err := Decode(data)
			assert.Nil(t, img)
			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, ErrTruncatedInput, decodeErr.Err)
			assert.Equal(t, len(data), decodeErr.Pos)

			img, err = NewHDRDecoder(&testcommon.ChunkedReader{Data: data, ChunkSize: 7}).Decode()
			assert.Nil(t, img)
			assert.ErrorIs(t, err, ErrTruncatedInput)
		})
	}
}

func TestMinScanlineBytes(t *testing.T) {
	assert.Equal(t, int64(12), minScanlineBytes(8))
	assert.Equal(t, int64(12), minScanlineBytes(127))
	assert.Equal(t, int64(20), minScanlineBytes(128))
	assert.Equal(t, int64(4+4*259*2), minScanlineBytes(32767))

	// a uniform row written with maximal runs is the smallest possible
	assert.Equal(t, minScanlineBytes(300), int64(len(testcommon.UniformScanline(300, [4]byte{}))))
}

func TestDecodeTruncatedPrefixes(t *testing.T) {
	data, _ := knownImage()
	headerLen := len(testcommon.Header([]string{"FORMAT=32-bit_rle_rgbe", "EXPOSURE=2"}, 2, 8))

	for n := len(HDR_SIGNATURE); n < len(data); n++ {
		img, err := Decode(data[:n])
		require.Error(t, err, "prefix length %d", n)
		assert.Nil(t, img)
		if n < headerLen {
			assert.ErrorIs(t, err, ErrMalformedHeader, "prefix length %d", n)
		} else {
			assert.ErrorIs(t, err, ErrTruncatedInput, "prefix length %d", n)
		}
	}
}

func TestDecodeErrorPosition(t *testing.T) {
	header := testcommon.Header(nil, 2, 8)
	data := testcommon.Concat(
		header,
		testcommon.UniformScanline(8, [4]byte{1, 2, 3, 128}),
		[]byte{1, 1, 0, 8},
	)

	_, err := Decode(data)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, ErrUnsupportedScanlineEncoding, decodeErr.Err)
	assert.Equal(t, 1, decodeErr.Row)
	assert.Equal(t, len(data)-4, decodeErr.Pos)
}

func TestDecodeConcurrent(t *testing.T) {
	const numImages = 16

	inputs := make([][]byte, numImages)
	for i := range inputs {
		inputs[i] = testcommon.UniformImage(8+i, 1+i%4, [4]byte{byte(i), byte(2 * i), byte(3 * i), 128})
	}

	results := make([]*HDRImage, numImages)
	errs := make([]error, numImages)
	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = Decode(inputs[i])
		}(i)
	}
	wg.Wait()

	for i := range inputs {
		require.NoError(t, errs[i])
		img := results[i]
		assert.Equal(t, 8+i, img.Width)
		assert.Equal(t, 1+i%4, img.Height)
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				p := img.RGBEAt(x, y)
				if p[0] != byte(i) || p[1] != byte(2*i) || p[2] != byte(3*i) || p[3] != 128 {
					t.Fatalf("image %d pixel (%d,%d) = %v", i, x, y, p)
				}
			}
		}
	}
}

func TestStreamDecoder(t *testing.T) {
	data, expected := knownImage()

	for _, chunkSize := range []int{1, 3, 64, 0} {
		t.Run(fmt.Sprintf("chunk %d", chunkSize), func(t *testing.T) {
			dec := NewHDRDecoder(&testcommon.ChunkedReader{Data: data, ChunkSize: chunkSize})
			header, err := dec.GetHeader()
			require.NoError(t, err)
			assert.Equal(t, 8, header.Width)

			img, err := dec.Decode()
			require.NoError(t, err)
			assert.Equal(t, expected, img.Pixels)
		})
	}
}

func TestStreamDecoderReadFailure(t *testing.T) {
	data, _ := knownImage()

	dec := NewHDRDecoder(&testcommon.FailingReader{Data: data[:len(data)-3]})
	img, err := dec.Decode()
	assert.Nil(t, img)
	assert.ErrorIs(t, err, testcommon.ErrFakeRead)
}

func TestStreamDecoderBadSignature(t *testing.T) {
	dec := NewHDRDecoder(bytes.NewReader([]byte("GIF89a\n\n-Y 1 +X 8\n")))
	_, err := dec.GetHeader()
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHeaderOnly(t *testing.T) {
	data := testcommon.Header([]string{"FORMAT=32-bit_rle_rgbe"}, 100, 200)

	img, err := Decode(data, WithHeaderOnly())
	require.NoError(t, err)
	assert.Equal(t, 200, img.Width)
	assert.Equal(t, 100, img.Height)
	assert.Nil(t, img.Pixels)
	assert.Equal(t, len(data), img.Header.HeaderByteLength)
}

func TestDecoderOptions(t *testing.T) {
	data := testcommon.UniformImage(16, 16, [4]byte{1, 1, 1, 128})

	_, err := Decode(data, WithMaxPixels(-1))
	assert.Error(t, err)

	img, err := Decode(data, WithMaxPixels(256), WithDebug())
	require.NoError(t, err)
	assert.Equal(t, 16, img.Width)

	_, err = Decode(data, WithOptions(&options.HDROptions{MaxPixels: 100}))
	assert.ErrorIs(t, err, ErrMalformedHeader)

	img, err = Decode(data, WithOptions(&options.HDROptions{HeaderOnly: true}))
	require.NoError(t, err)
	assert.Nil(t, img.Pixels)
}
