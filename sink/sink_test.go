package sink

import (
	"encoding/binary"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	require.NoError(t, r.Send([]byte{1, 2, 3}))
	require.NoError(t, r.Send([]byte{4, 5, 6}))
	assert.Equal(t, []byte{4, 5, 6}, r.Last())
	assert.Equal(t, 2, r.Frames())

	boom := errors.New("boom")
	r.FailWith(boom)
	assert.ErrorIs(t, r.Send([]byte{7, 8, 9}), boom)
	assert.Equal(t, 2, r.Frames())

	require.NoError(t, r.Close())
	assert.ErrorIs(t, r.Send(nil), ErrClosed)
}

func TestNormalizeAddr(t *testing.T) {
	got, err := NormalizeAddr("192.168.1.40")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.40:4048", got)

	got, err = NormalizeAddr("wled.local:5000")
	require.NoError(t, err)
	assert.Equal(t, "wled.local:5000", got)

	for _, bad := range []string{"", ":4048", "host:port", "host:70000", "bad host!"} {
		_, err := NormalizeAddr(bad)
		assert.Error(t, err, bad)
	}
}

func TestEncodePacket(t *testing.T) {
	buf := make([]byte, ddpHeaderLen+ddpMaxPayload)
	pkt := encodePacket(buf, 3, 1440, []byte{9, 8, 7}, true)

	require.Len(t, pkt, ddpHeaderLen+3)
	assert.Equal(t, byte(0x41), pkt[0])
	assert.Equal(t, byte(3), pkt[1])
	assert.Equal(t, byte(ddpRGB24), pkt[2])
	assert.Equal(t, byte(ddpOutputID), pkt[3])
	assert.Equal(t, uint32(1440), binary.BigEndian.Uint32(pkt[4:8]))
	assert.Equal(t, uint16(3), binary.BigEndian.Uint16(pkt[8:10]))
	assert.Equal(t, []byte{9, 8, 7}, pkt[10:])
}

func TestDDPSplitsLargeFrames(t *testing.T) {
	ln, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer ln.Close()

	d, err := DialDDP(ln.LocalAddr().String())
	require.NoError(t, err)
	defer d.Close()

	frame := make([]byte, 600*3) // two packets
	for i := range frame {
		frame[i] = byte(i)
	}
	require.NoError(t, d.Send(frame))

	require.NoError(t, ln.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 2048)

	n, err := ln.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, ddpHeaderLen+ddpMaxPayload, n)
	assert.Equal(t, byte(0x40), buf[0], "first packet has no push flag")
	assert.Equal(t, uint32(0), binary.BigEndian.Uint32(buf[4:8]))

	n, err = ln.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, ddpHeaderLen+600*3-ddpMaxPayload, n)
	assert.Equal(t, byte(0x41), buf[0])
	assert.Equal(t, uint32(ddpMaxPayload), binary.BigEndian.Uint32(buf[4:8]))
	assert.Equal(t, frame[ddpMaxPayload:], buf[ddpHeaderLen:n])
}

func TestDecodePacket(t *testing.T) {
	buf := make([]byte, ddpHeaderLen+ddpMaxPayload)
	pkt := encodePacket(buf, 7, 2880, []byte{1, 2, 3, 4, 5, 6}, false)

	p, err := DecodePacket(pkt)
	require.NoError(t, err)
	assert.False(t, p.Push)
	assert.Equal(t, byte(7), p.Seq)
	assert.Equal(t, byte(ddpRGB24), p.DataType)
	assert.Equal(t, uint32(2880), p.Offset)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, p.Data)

	_, err = DecodePacket(pkt[:4])
	assert.Error(t, err)
	_, err = DecodePacket(pkt[:ddpHeaderLen+2])
	assert.Error(t, err, "declared length longer than packet")
}
