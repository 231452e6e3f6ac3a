// Package ctlmqtt mirrors the outgoing control state to an MQTT broker
// so a phone or dashboard can watch a session remotely.
package ctlmqtt

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	options "github.com/stronnag/kbd2ufo/pkg/options"
	ufo "github.com/stronnag/kbd2ufo/pkg/ufo"
)

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	fmt.Println("Connected")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	fmt.Printf("Connect lost: %v\n", err)
}

type MQTTClient struct {
	client mqtt.Client
	topic  string
}

func NewTlsConfig(cafile string) (*tls.Config, string) {
	if len(cafile) == 0 {
		return nil, "tcp"
	} else {
		certpool := x509.NewCertPool()
		ca, err := os.ReadFile(cafile)
		if err != nil {
			log.Fatalln(err.Error())
		}
		certpool.AppendCertsFromPEM(ca)
		return &tls.Config{
			RootCAs:            certpool,
			InsecureSkipVerify: true, ClientAuth: tls.NoClientCert,
		},
			"ssl"
	}
}

func NewMQTTClient() *MQTTClient {
	var broker string
	var topic string
	var port int
	var cafile string
	var user string
	var passwd string

	if options.Config.Mqttopts == "" {
		return nil
	}

	u, err := url.Parse(options.Config.Mqttopts)
	if err != nil {
		log.Fatal(err)
	}

	broker = u.Hostname()
	port, _ = strconv.Atoi(u.Port())

	if len(u.Path) > 0 {
		topic = u.Path[1:]
	}

	up := u.User
	user = up.Username()
	passwd, _ = up.Password()

	q := u.Query()
	ca := q["cafile"]
	if len(ca) > 0 {
		cafile = ca[0]
	}
	if broker == "" {
		broker = "broker.emqx.io"
	}

	if topic == "" {
		topic = fmt.Sprintf("org/kbd2ufo/mqtt/ctlmirror/_%x", rand.Int())
		fmt.Fprintf(os.Stderr, "using random topic \"%s\"\n", topic)
	}

	if port == 0 {
		port = 1883
	}

	tlsconf, scheme := NewTlsConfig(cafile)
	if u.Scheme == "ws" {
		scheme = "ws"
	}
	if u.Scheme == "wss" {
		tlsconf = &tls.Config{RootCAs: nil, ClientAuth: tls.NoClientCert}
		scheme = "wss"
	}

	if tlsconf == nil && (u.Scheme == "mqtts" || u.Scheme == "ssl") {
		tlsconf = &tls.Config{RootCAs: nil, ClientAuth: tls.NoClientCert}
		scheme = "ssl"
	}

	if len(os.Getenv("NOVERIFYSSL")) > 0 && tlsconf != nil {
		tlsconf.InsecureSkipVerify = true
	}

	clientid := fmt.Sprintf("%x", rand.Int63())
	opts := mqtt.NewClientOptions()

	mpath := ""
	if scheme == "ws" || scheme == "wss" {
		mpath = "/mqtt"
	}
	hpath := fmt.Sprintf("%s://%s:%d%s", scheme, broker, port, mpath)

	opts.AddBroker(hpath)
	opts.SetTLSConfig(tlsconf)
	opts.SetClientID(clientid)
	opts.SetUsername(user)
	opts.SetPassword(passwd)

	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal(token.Error())
	}
	return &MQTTClient{client: client, topic: topic}
}

// publish is fire and forget. A dropped mirror message must never stall
// the control schedule.
func (m *MQTTClient) publish(msg string) {
	m.client.Publish(m.topic, 0, false, msg)
}

func ctl_message(a ufo.Analog, offus int64) string {
	var sb strings.Builder
	sb.WriteString("off:")
	sb.WriteString(strconv.FormatInt(offus/1000, 10))
	sb.WriteByte(',')
	sb.WriteString("c1:")
	sb.WriteString(strconv.Itoa(int(a.C1)))
	sb.WriteByte(',')
	sb.WriteString("c2:")
	sb.WriteString(strconv.Itoa(int(a.C2)))
	sb.WriteByte(',')
	sb.WriteString("thr:")
	sb.WriteString(strconv.Itoa(int(a.Thr)))
	sb.WriteByte(',')
	sb.WriteString("c4:")
	sb.WriteString(strconv.Itoa(int(a.C4)))
	sb.WriteByte(',')
	sb.WriteString("fly:")
	sb.WriteString(strconv.Itoa(int(a.Flags & ufo.FlagFastFly)))
	return sb.String()
}

// Mirror publishes at most one control snapshot per second.
type Mirror struct {
	c     *MQTTClient
	start time.Time
	last  time.Time
}

func NewMirror() *Mirror {
	c := NewMQTTClient()
	if c == nil {
		return nil
	}
	return &Mirror{c: c}
}

func (m *Mirror) due(when time.Time) bool {
	return m.last.IsZero() || when.Sub(m.last) >= time.Second
}

func (m *Mirror) Frame(b []byte, when time.Time) {
	a, err := ufo.ParseAnalog(b)
	if err != nil {
		return
	}
	if m.start.IsZero() {
		m.start = when
	}
	if !m.due(when) {
		return
	}
	m.last = when
	m.c.publish(ctl_message(a, when.Sub(m.start).Microseconds()))
}

func (m *Mirror) Close() {
	m.c.client.Disconnect(250)
}
