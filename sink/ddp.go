package sink

import (
	"encoding/binary"
	"fmt"
	"net"
	"strconv"
)

// DDP (Distributed Display Protocol) framing constants
const (
	DDPPort       = 4048
	ddpHeaderLen  = 10
	ddpMaxPayload = 1440 // 480 RGB pixels

	ddpVersion1 = 0x40
	ddpPush     = 0x01
	ddpRGB24    = 0x0B
	ddpOutputID = 0x01
)

// DDP sends frames to a DDP receiver over UDP. Frames larger than one packet
// are split by data offset; the push flag is set on the last packet.
type DDP struct {
	conn *net.UDPConn
	seq  byte
	buf  []byte
}

// DialDDP resolves addr ("host" or "host:port") and opens a UDP socket to it.
// A malformed address is a configuration error.
func DialDDP(addr string) (*DDP, error) {
	hostport, err := NormalizeAddr(addr)
	if err != nil {
		return nil, err
	}

	raddr, err := net.ResolveUDPAddr("udp", hostport)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", hostport, err)
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", hostport, err)
	}

	return &DDP{conn: conn, buf: make([]byte, ddpHeaderLen+ddpMaxPayload)}, nil
}

// NormalizeAddr validates a fixture address and fills in the default DDP port.
func NormalizeAddr(addr string) (string, error) {
	if addr == "" {
		return "", fmt.Errorf("empty fixture address")
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		// bare host, use the protocol default port
		if net.ParseIP(addr) == nil && !validHostname(addr) {
			return "", fmt.Errorf("invalid fixture address %q: %w", addr, err)
		}
		return net.JoinHostPort(addr, strconv.Itoa(DDPPort)), nil
	}
	if host == "" {
		return "", fmt.Errorf("invalid fixture address %q: missing host", addr)
	}
	if p, err := strconv.Atoi(port); err != nil || p <= 0 || p > 65535 {
		return "", fmt.Errorf("invalid fixture address %q: bad port", addr)
	}
	return addr, nil
}

func validHostname(h string) bool {
	if len(h) == 0 || len(h) > 253 {
		return false
	}
	for _, r := range h {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}

// Send writes one frame, split over as many packets as needed.
func (d *DDP) Send(frame []byte) error {
	d.seq = d.seq%15 + 1 // 1..15, 0 means unused

	for offset := 0; offset < len(frame) || offset == 0; offset += ddpMaxPayload {
		end := min(offset+ddpMaxPayload, len(frame))
		pkt := encodePacket(d.buf, d.seq, offset, frame[offset:end], end == len(frame))
		if _, err := d.conn.Write(pkt); err != nil {
			return fmt.Errorf("ddp write: %w", err)
		}
		if end == len(frame) {
			break
		}
	}
	return nil
}

func (d *DDP) Close() error {
	return d.conn.Close()
}

// encodePacket fills buf with one DDP packet and returns the used slice.
func encodePacket(buf []byte, seq byte, offset int, data []byte, push bool) []byte {
	flags := byte(ddpVersion1)
	if push {
		flags |= ddpPush
	}
	buf[0] = flags
	buf[1] = seq & 0x0F
	buf[2] = ddpRGB24
	buf[3] = ddpOutputID
	binary.BigEndian.PutUint32(buf[4:8], uint32(offset))
	binary.BigEndian.PutUint16(buf[8:10], uint16(len(data)))
	n := copy(buf[ddpHeaderLen:], data)
	return buf[:ddpHeaderLen+n]
}

// Packet is a decoded DDP packet
type Packet struct {
	Push     bool
	Seq      byte
	DataType byte
	Output   byte
	Offset   uint32
	Data     []byte
}

// DecodePacket parses one DDP packet. Data aliases pkt.
func DecodePacket(pkt []byte) (Packet, error) {
	if len(pkt) < ddpHeaderLen {
		return Packet{}, fmt.Errorf("ddp packet too short: %d bytes", len(pkt))
	}
	if pkt[0]&0xC0 != ddpVersion1 {
		return Packet{}, fmt.Errorf("unsupported ddp version flags 0x%02x", pkt[0])
	}

	n := int(binary.BigEndian.Uint16(pkt[8:10]))
	if ddpHeaderLen+n > len(pkt) {
		return Packet{}, fmt.Errorf("ddp length %d exceeds packet", n)
	}
	return Packet{
		Push:     pkt[0]&ddpPush != 0,
		Seq:      pkt[1] & 0x0F,
		DataType: pkt[2],
		Output:   pkt[3],
		Offset:   binary.BigEndian.Uint32(pkt[4:8]),
		Data:     pkt[ddpHeaderLen : ddpHeaderLen+n],
	}, nil
}
