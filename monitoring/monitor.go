// Package monitoring turns a running scheduler into a small web server for
// external inspection: registered tasks, timer slots, queue fill levels,
// and process resource usage.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"reflect"
	"runtime/pprof"
	"sort"
	"strconv"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/embedlab/coop/kernel"
)

// A Buffer is any bounded queue the monitor can report fill levels for.
// queueing.Ring and kernel.EventLoop satisfy it.
type Buffer interface {
	Size() int
	Capacity() int
}

type namedBuffer struct {
	name   string
	buffer Buffer
}

// Monitor exposes a scheduler over HTTP. Endpoints that mutate scheduler
// state (/api/tick, /api/step) are meant for test and bench embeddings;
// driving a scheduler from both its application loop and the monitor at
// the same time violates the kernel's single-goroutine contract.
type Monitor struct {
	scheduler  *kernel.Scheduler
	buffers    []namedBuffer
	portNumber int
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterScheduler registers the scheduler to be monitored.
func (m *Monitor) RegisterScheduler(s *kernel.Scheduler) {
	m.scheduler = s
}

// RegisterBuffer registers a bounded queue to be reported by the buffers
// endpoint.
func (m *Monitor) RegisterBuffer(name string, b Buffer) {
	m.buffers = append(m.buffers, namedBuffer{name: name, buffer: b})
}

// StartServer starts the monitor as a web server, on the configured port or
// a random one.
func (m *Monitor) StartServer() {
	r := m.router()

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	fmt.Fprintf(
		os.Stderr,
		"Monitoring scheduler with http://localhost:%d\n",
		listener.Addr().(*net.TCPAddr).Port)

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/tick", m.tick)
	r.HandleFunc("/api/step", m.step)
	r.HandleFunc("/api/list_tasks", m.listTasks)
	r.HandleFunc("/api/task/{index}", m.listTaskDetails)
	r.HandleFunc("/api/timers", m.listTimers)
	r.HandleFunc("/api/buffers", m.listBuffers)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"now\":%d}", m.scheduler.Clock().Ticks())
}

func (m *Monitor) tick(w http.ResponseWriter, _ *http.Request) {
	m.scheduler.Clock().Increment()
	m.now(w, nil)
}

func (m *Monitor) step(w http.ResponseWriter, _ *http.Request) {
	m.scheduler.ProcessAll()
	m.now(w, nil)
}

func (m *Monitor) listTasks(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "[")
	for i, task := range m.scheduler.Tasks() {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "\"%s\"", reflect.TypeOf(task))
	}
	fmt.Fprint(w, "]")
}

func (m *Monitor) listTaskDetails(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		w.WriteHeader(400)
		return
	}

	tasks := m.scheduler.Tasks()
	if index < 0 || index >= len(tasks) {
		w.WriteHeader(404)
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(tasks[index])
	serializer.SetMaxDepth(1)
	err = serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) listTimers(w http.ResponseWriter, _ *http.Request) {
	bytes, err := json.Marshal(m.scheduler.TimerInfos())
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type bufferRsp struct {
	Buffer string `json:"buffer"`
	Level  int    `json:"level"`
	Cap    int    `json:"cap"`
}

func bufferPercent(b Buffer) float64 {
	return float64(b.Size()) / float64(b.Capacity())
}

func (m *Monitor) listBuffers(w http.ResponseWriter, _ *http.Request) {
	sorted := make([]namedBuffer, len(m.buffers))
	copy(sorted, m.buffers)

	sort.Slice(sorted, func(i, j int) bool {
		return bufferPercent(sorted[i].buffer) >
			bufferPercent(sorted[j].buffer)
	})

	rsp := make([]bufferRsp, 0, len(sorted))
	for _, b := range sorted {
		rsp = append(rsp, bufferRsp{
			Buffer: b.name,
			Level:  b.buffer.Size(),
			Cap:    b.buffer.Capacity(),
		})
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
