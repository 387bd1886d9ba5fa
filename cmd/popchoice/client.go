package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	http_common "github.com/humanbelnik/popchoice/internal/delivery/http/common"
	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/humanbelnik/popchoice/internal/service/wizard"
)

var errQuit = errors.New("quit")

type apiError struct {
	status int
	http_common.ErrorResponse
}

func (e *apiError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

type formPatch struct {
	FavoriteMovie string   `json:"favoriteMovie"`
	Era           string   `json:"preferenceEra"`
	Moods         []string `json:"moods"`
	Companion     string   `json:"companion"`
}

type wsEvent struct {
	Type    string      `json:"type"`
	Payload wizard.View `json:"payload"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	scanner    *bufio.Scanner
	out        io.Writer

	flowID string
	wsConn *websocket.Conn
	wsDone chan struct{}
}

func NewClient(baseURL string, in io.Reader, out io.Writer) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 90 * time.Second},
		scanner:    bufio.NewScanner(in),
		out:        out,
	}
}

func (c *Client) makeRequest(method, path string, body any) (wizard.View, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return wizard.View{}, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return wizard.View{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wizard.View{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &apiError{status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr.ErrorResponse); err != nil {
			apiErr.Message = resp.Status
		}
		return wizard.View{}, apiErr
	}
	if resp.StatusCode == http.StatusNoContent {
		return wizard.View{}, nil
	}

	var v wizard.View
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return wizard.View{}, fmt.Errorf("failed to decode flow: %w", err)
	}
	return v, nil
}

func (c *Client) flowPath(suffix string) string {
	return "/flows/" + c.flowID + suffix
}

func (c *Client) prompt(question string) (string, error) {
	fmt.Fprint(c.out, question+" ")
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

// Run walks one group through the wizard until the user quits or input ends.
func (c *Client) Run() error {
	v, err := c.makeRequest(http.MethodPost, "/flows", nil)
	if err != nil {
		return err
	}
	c.flowID = v.ID
	defer c.makeRequest(http.MethodDelete, c.flowPath(""), nil)

	if err := c.connectWebSocket(); err != nil {
		fmt.Fprintf(c.out, "live updates unavailable: %v\n", err)
	}

	for {
		if v, err = c.setup(); err != nil {
			return err
		}
		if v, err = c.questions(v); err != nil {
			return err
		}
		again, err := c.browse(v)
		if err != nil || !again {
			return err
		}
	}
}

func (c *Client) setup() (wizard.View, error) {
	fmt.Fprintln(c.out, "\n=== PopChoice ===")
	for {
		size, err := c.prompt("How many people?")
		if err != nil {
			return wizard.View{}, err
		}
		timeAvailable, err := c.prompt("How much time do you have?")
		if err != nil {
			return wizard.View{}, err
		}

		v, err := c.makeRequest(http.MethodPost, c.flowPath("/setup"), map[string]string{
			"groupSize":     size,
			"timeAvailable": timeAvailable,
		})
		if err == nil {
			return v, nil
		}
		if !isValidation(err) {
			return wizard.View{}, err
		}
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

func (c *Client) questions(v wizard.View) (wizard.View, error) {
	for v.Stage == wizard.StageQuestions {
		fmt.Fprintf(c.out, "\nPerson %d of %d\n", v.CurrentParticipant, v.GroupSize)

		patch, err := c.askForm()
		if err != nil {
			return v, err
		}
		edited, err := c.makeRequest(http.MethodPatch, c.flowPath("/form"), patch)
		if err != nil {
			if !isValidation(err) {
				return v, err
			}
			fmt.Fprintf(c.out, "Error: %v\n", err)
			continue
		}
		v = edited

		if v, err = c.submit(v); err != nil {
			return v, err
		}
	}
	return v, nil
}

// submit retries the final submission on fetch failures; the server keeps the
// filled form so nothing has to be typed again.
func (c *Client) submit(v wizard.View) (wizard.View, error) {
	for {
		if containsAction(v.Actions, wizard.ActionGetMovie) {
			fmt.Fprintln(c.out, "Finding a movie...")
		}
		next, err := c.makeRequest(http.MethodPost, c.flowPath("/answers"), nil)
		if err == nil {
			return next, nil
		}

		var apiErr *apiError
		if !errors.As(err, &apiErr) {
			return v, err
		}
		switch apiErr.status {
		case http.StatusUnprocessableEntity:
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return v, nil
		case http.StatusBadGateway:
			fmt.Fprintln(c.out, apiErr.Message)
			if _, err := c.prompt("Press Enter to try again."); err != nil {
				return v, err
			}
		default:
			return v, err
		}
	}
}

func (c *Client) askForm() (formPatch, error) {
	var patch formPatch
	var err error

	if patch.FavoriteMovie, err = c.prompt(model.QuestionFavoriteMovie); err != nil {
		return patch, err
	}
	era, err := c.prompt(model.QuestionEra + " [1] New [2] Classic:")
	if err != nil {
		return patch, err
	}
	patch.Era = choose(era, model.Eras)

	moods, err := c.prompt(model.QuestionMood + " [1] Fun [2] Serious [3] Inspiring [4] Scary (comma separated):")
	if err != nil {
		return patch, err
	}
	patch.Moods = []string{}
	for _, m := range strings.Split(moods, ",") {
		if m = strings.TrimSpace(m); m != "" {
			patch.Moods = append(patch.Moods, choose(m, model.Moods))
		}
	}

	if patch.Companion, err = c.prompt(model.QuestionCompanion); err != nil {
		return patch, err
	}
	return patch, nil
}

// browse shows the recommendations one at a time. It reports whether the group
// wants to go again.
func (c *Client) browse(v wizard.View) (bool, error) {
	for {
		switch v.Stage {
		case wizard.StageNoMatch:
			fmt.Fprintln(c.out, "\nSorry, no movie matched your group this time.")
		case wizard.StageRecommendations:
			c.printRecommendation(v)
		default:
			return false, fmt.Errorf("unexpected stage %q", v.Stage)
		}

		if containsAction(v.Actions, wizard.ActionNextMovie) {
			in, err := c.prompt("[Enter] Next Movie, [q] quit:")
			if err != nil || in == "q" {
				return false, ignoreQuit(err)
			}
			if v, err = c.makeRequest(http.MethodPost, c.flowPath("/next"), nil); err != nil {
				return false, err
			}
			continue
		}

		in, err := c.prompt("[Enter] Go Again, [q] quit:")
		if err != nil || in == "q" {
			return false, ignoreQuit(err)
		}
		if _, err = c.makeRequest(http.MethodPost, c.flowPath("/restart"), nil); err != nil {
			return false, err
		}
		return true, nil
	}
}

func (c *Client) printRecommendation(v wizard.View) {
	rec := v.Recommendation
	if rec == nil {
		return
	}
	fmt.Fprintf(c.out, "\n%d/%d  %s (%d)\n", v.Position, v.Total, rec.Title, rec.ReleaseYear)
	fmt.Fprintf(c.out, "%s\n", rec.Synopsis)
	if rec.PosterURL != "" {
		fmt.Fprintf(c.out, "Poster: %s\n", rec.PosterURL)
	}
}

func (c *Client) connectWebSocket() error {
	wsURL := "ws" + strings.TrimPrefix(c.baseURL, "http") + c.flowPath("/ws")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	c.wsConn = conn
	c.wsDone = make(chan struct{})
	go c.listenWebSocket()
	return nil
}

// listenWebSocket prints posters that arrive after a recommendation was shown.
func (c *Client) listenWebSocket() {
	defer close(c.wsDone)

	shown := ""
	for {
		_, msg, err := c.wsConn.ReadMessage()
		if err != nil {
			return
		}
		var ev wsEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			continue
		}
		rec := ev.Payload.Recommendation
		if rec == nil || rec.PosterURL == "" || rec.PosterURL == shown {
			continue
		}
		shown = rec.PosterURL
		fmt.Fprintf(c.out, "\nPoster for %s: %s\n", rec.Title, rec.PosterURL)
	}
}

func (c *Client) Close() {
	if c.wsConn != nil {
		c.wsConn.Close()
		<-c.wsDone
	}
}

// choose maps a 1-based option number to its value; anything else is sent as
// typed and left for the server to validate.
func choose[T ~string](in string, options []T) string {
	if n, err := strconv.Atoi(in); err == nil && n >= 1 && n <= len(options) {
		return string(options[n-1])
	}
	return in
}

func containsAction(actions []wizard.Action, a wizard.Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

func isValidation(err error) bool {
	var apiErr *apiError
	return errors.As(err, &apiErr) && apiErr.status == http.StatusUnprocessableEntity
}

func ignoreQuit(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
