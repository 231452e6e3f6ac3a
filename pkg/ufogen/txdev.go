package ufogen

import (
	"fmt"
	"net"
)

// UDPDev is the connected datagram socket the control stream leaves on.
type UDPDev struct {
	conn *net.UDPConn
}

func NewUDPDev(bindip string, bindport int, dstip string, dstport int) (*UDPDev, error) {
	laddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", bindip, bindport))
	if err != nil {
		return nil, fmt.Errorf("txdev: %w", err)
	}
	raddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", dstip, dstport))
	if err != nil {
		return nil, fmt.Errorf("txdev: %w", err)
	}
	conn, err := net.DialUDP("udp", laddr, raddr)
	if err != nil {
		return nil, fmt.Errorf("txdev: %w", err)
	}
	return &UDPDev{conn: conn}, nil
}

func (d *UDPDev) Send(b []byte) error {
	_, err := d.conn.Write(b)
	return err
}

func (d *UDPDev) Close() {
	d.conn.Close()
}
