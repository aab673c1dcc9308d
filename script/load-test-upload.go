package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/cnab"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
)

// FileResponse is the subset of the file resource the load test reads
type FileResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// TestResult contains metrics for a single uploaded file
type TestResult struct {
	Success        bool
	Status         string
	UploadTime     time.Duration
	CompletionTime time.Duration
	Error          error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalFiles      int
	ProcessedFiles  int
	RejectedFiles   int
	FailedFiles     int
	TotalTime       time.Duration
	UploadTimes     []time.Duration
	CompletionTimes []time.Duration
	ErrorCounts     map[string]int
	Lock            sync.Mutex
}

var stores = []entity.StoreKey{
	{Name: "BAR DO JOAO", OwnerName: "JOAO MACEDO"},
	{Name: "LOJA DO O - MATRIZ", OwnerName: "MARIA JOSEFINA"},
	{Name: "MERCEARIA 3 IRMAOS", OwnerName: "MARCOS PEREIRA"},
	{Name: "MERCADO DA AVENIDA", OwnerName: "JOSE COSTA"},
}

func main() {
	concurrency := flag.Int("c", 4, "Number of concurrent uploaders")
	totalFiles := flag.Int("n", 20, "Total number of files to upload")
	linesPerFile := flag.Int("lines", 100, "CNAB lines per file")
	invalidRate := flag.Float64("invalid", 0.1, "Fraction of files carrying one invalid line")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	userID := flag.String("user", "load-test", "X-User-ID header")
	timeout := flag.Duration("timeout", 2*time.Minute, "How long to wait for each file to finish")
	flag.Parse()

	fmt.Printf("Uploading %d files of %d lines with %d uploaders\n", *totalFiles, *linesPerFile, *concurrency)

	stats := &TestStats{
		TotalFiles:  *totalFiles,
		ErrorCounts: make(map[string]int),
	}

	jobs := make(chan int, *totalFiles)
	results := make(chan TestResult, *totalFiles)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := &http.Client{Timeout: 30 * time.Second}
			for job := range jobs {
				invalid := rand.Float64() < *invalidRate
				content := generateFile(*linesPerFile, invalid)
				results <- uploadAndWait(client, *baseURL, *userID, fmt.Sprintf("CNAB-%04d.txt", job), content, *timeout)
			}
		}()
	}

	for i := 0; i < *totalFiles; i++ {
		jobs <- i
	}
	close(jobs)

	startTime := time.Now()
	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		stats.Lock.Lock()
		switch {
		case result.Error != nil:
			stats.FailedFiles++
			stats.ErrorCounts[result.Error.Error()]++
		case result.Status == "Processed":
			stats.ProcessedFiles++
		default:
			stats.RejectedFiles++
		}
		stats.UploadTimes = append(stats.UploadTimes, result.UploadTime)
		if result.CompletionTime > 0 {
			stats.CompletionTimes = append(stats.CompletionTimes, result.CompletionTime)
		}
		stats.Lock.Unlock()
	}
	stats.TotalTime = time.Since(startTime)

	printResults(stats, *linesPerFile)
}

// generateFile builds a CNAB file; when invalid is set one line carries an unknown type
func generateFile(lines int, invalid bool) []byte {
	var buf bytes.Buffer
	day := time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)
	badLine := -1
	if invalid && lines > 0 {
		badLine = rand.Intn(lines)
	}

	for i := 0; i < lines; i++ {
		store := stores[rand.Intn(len(stores))]
		line := cnab.FormatLine(cnab.Record{
			TypeCode:  rand.Intn(9) + 1,
			Date:      day.AddDate(0, 0, rand.Intn(28)),
			Amount:    int64(rand.Intn(99999) + 1),
			SubjectID: fmt.Sprintf("%011d", rand.Int63n(99999999999)),
			CardRef:   fmt.Sprintf("%04d****%04d", rand.Intn(10000), rand.Intn(10000)),
			Time:      entity.TimeOfDay{Hour: rand.Intn(24), Minute: rand.Intn(60), Second: rand.Intn(60)},
			OwnerName: store.OwnerName,
			StoreName: store.Name,
		})
		if i == badLine {
			line = "0" + line[1:]
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

func uploadAndWait(client *http.Client, baseURL, userID, name string, content []byte, timeout time.Duration) TestResult {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return TestResult{Error: err}
	}
	if _, err := part.Write(content); err != nil {
		return TestResult{Error: err}
	}
	if err := w.Close(); err != nil {
		return TestResult{Error: err}
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/files", body)
	if err != nil {
		return TestResult{Error: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-User-ID", userID)

	start := time.Now()
	resp, err := client.Do(req)
	result := TestResult{UploadTime: time.Since(start)}
	if err != nil {
		result.Error = err
		return result
	}
	var file FileResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&file)
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		result.Error = fmt.Errorf("upload returned HTTP %d", resp.StatusCode)
		return result
	}
	if decodeErr != nil {
		result.Error = decodeErr
		return result
	}

	deadline := start.Add(timeout)
	for time.Now().Before(deadline) {
		time.Sleep(200 * time.Millisecond)

		resp, err := client.Get(baseURL + "/api/v1/files/" + file.ID)
		if err != nil {
			continue
		}
		err = json.NewDecoder(resp.Body).Decode(&file)
		resp.Body.Close()
		if err != nil {
			continue
		}

		if file.Status == "Processed" || file.Status == "Rejected" {
			result.Success = true
			result.Status = file.Status
			result.CompletionTime = time.Since(start)
			return result
		}
	}

	result.Error = fmt.Errorf("file still %s after %s", strings.ToLower(file.Status), timeout)
	return result
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(stats *TestStats, linesPerFile int) {
	sort.Slice(stats.UploadTimes, func(i, j int) bool { return stats.UploadTimes[i] < stats.UploadTimes[j] })
	sort.Slice(stats.CompletionTimes, func(i, j int) bool { return stats.CompletionTimes[i] < stats.CompletionTimes[j] })

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Files:      %d\n", stats.TotalFiles)
	fmt.Printf("Processed Files:  %d\n", stats.ProcessedFiles)
	fmt.Printf("Rejected Files:   %d\n", stats.RejectedFiles)
	fmt.Printf("Failed Files:     %d\n", stats.FailedFiles)
	fmt.Printf("Total Test Time:  %.2f seconds\n", stats.TotalTime.Seconds())

	if seconds := stats.TotalTime.Seconds(); seconds > 0 {
		completed := stats.ProcessedFiles + stats.RejectedFiles
		fmt.Printf("Files/second:     %.2f\n", float64(completed)/seconds)
		fmt.Printf("Lines/second:     %.2f\n", float64(stats.ProcessedFiles*linesPerFile)/seconds)
	}

	fmt.Println("\n----------------- UPLOAD TIMES -----------------")
	fmt.Printf("P50: %v  P90: %v  P99: %v\n",
		percentile(stats.UploadTimes, 50), percentile(stats.UploadTimes, 90), percentile(stats.UploadTimes, 99))

	fmt.Println("\n----------------- TIME TO TERMINAL STATUS -----------------")
	fmt.Printf("P50: %v  P90: %v  P99: %v\n",
		percentile(stats.CompletionTimes, 50), percentile(stats.CompletionTimes, 90), percentile(stats.CompletionTimes, 99))

	if stats.FailedFiles > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-50s: %d\n", errMsg, count)
		}
	}
	fmt.Println("================================================")
}
