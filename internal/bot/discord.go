// Package bot hosts the Discord surface: the /ivchart slash command, the
// buttons attached to posted charts, and scheduled refresh of stored charts.
package bot

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"IVSentinel/internal/chart"
	"IVSentinel/internal/model"
	"IVSentinel/internal/render"
	"IVSentinel/internal/store"
)

const commandName = "ivchart"

var chartCommand = &discordgo.ApplicationCommand{
	Name:        commandName,
	Description: "Chart implied volatility over price for an option",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "symbol",
			Description: "Underlying ticker, e.g. AAPL",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "expiration",
			Description: "Option expiration date, e.g. 2025-10-17 or 10/17",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "option_type",
			Description: "Contract type (default call)",
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "call", Value: string(model.Call)},
				{Name: "put", Value: string(model.Put)},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "days",
			Description: "Lookback in days (default 1, >7 switches to daily candles)",
			MinValue:    &minDays,
			MaxValue:    365,
		},
	},
}

var minDays = float64(1)

// Bot owns the Discord session and serves chart interactions.
type Bot struct {
	session *discordgo.Session
	gen     *chart.Generator
	store   store.Store
	loc     *time.Location
}

// New builds a Bot; the session is not opened until Start.
func New(token string, gen *chart.Generator, st store.Store, loc *time.Location) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	b := &Bot{session: session, gen: gen, store: st, loc: loc}
	session.Identify.Intents = discordgo.IntentsGuilds
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Start opens the gateway connection and registers the slash command.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", chartCommand); err != nil {
		b.session.Close()
		return fmt.Errorf("register /%s: %w", commandName, err)
	}
	log.Printf("[INFO] registered /%s command", commandName)
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	log.Println("[INFO] closing discord session")
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[INFO] discord connected as %s", r.User.Username)
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == commandName {
			go b.handleChartCommand(s, i)
		}
	case discordgo.InteractionMessageComponent:
		go b.handleComponent(s, i)
	}
}

func (b *Bot) handleChartCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Chart generation can take several seconds of API calls; acknowledge
	// immediately and fill the response in later.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Printf("[ERROR] defer interaction: %v", err)
		return
	}

	req, err := b.requestFromOptions(i.ApplicationCommandData().Options)
	if err != nil {
		b.editWithError(s, i, req.Symbol, err)
		return
	}

	res, err := b.gen.Generate(req)
	if err != nil {
		log.Printf("[WARN] generate %s: %v", req.Symbol, err)
		b.editWithError(s, i, req.Symbol, err)
		return
	}
	png, err := render.Chart(res)
	if err != nil {
		log.Printf("[ERROR] render %s: %v", req.Symbol, err)
		b.editWithError(s, i, req.Symbol, err)
		return
	}

	content := ResultContent(res)
	comps := chartComponents()
	msg, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &comps,
		Files:      []*discordgo.File{chartFile(png)},
	})
	if err != nil {
		log.Printf("[ERROR] post chart for %s: %v", req.Symbol, err)
		return
	}

	rec := &store.ChartRecord{
		MessageID:  msg.ID,
		ChannelID:  i.ChannelID,
		UserID:     interactionUserID(i),
		Symbol:     res.Symbol,
		Expiration: res.Expiration,
		OptionType: res.OptionType,
		Days:       res.Days,
	}
	if err := b.store.Save(rec); err != nil {
		log.Printf("[WARN] save chart record: %v", err)
	}
}

// requestFromOptions translates slash command options into a chart request.
func (b *Bot) requestFromOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) (chart.Request, error) {
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		byName[o.Name] = o
	}

	req := chart.Request{OptionType: model.Call, Days: 1}
	if o, ok := byName["symbol"]; ok {
		req.Symbol = strings.ToUpper(strings.TrimSpace(o.StringValue()))
	}
	if o, ok := byName["option_type"]; ok {
		req.OptionType = model.OptionType(o.StringValue())
	}
	if o, ok := byName["days"]; ok {
		req.Days = int(o.IntValue())
	}
	if o, ok := byName["expiration"]; ok {
		exp, err := ParseExpiration(o.StringValue(), time.Now(), b.loc)
		if err != nil {
			return req, err
		}
		req.Expiration = exp
	}
	return req, nil
}

// editWithError fills the deferred response with a message and an error card
// image so the reply is never a bare failure.
func (b *Bot) editWithError(s *discordgo.Session, i *discordgo.InteractionCreate, symbol string, cause error) {
	content := ErrorContent(symbol, cause)
	edit := &discordgo.WebhookEdit{Content: &content}
	if card, err := render.ErrorCard(fmt.Sprintf("%s: no chart available", symbol)); err == nil {
		edit.Files = []*discordgo.File{chartFile(card)}
	}
	if _, err := s.InteractionResponseEdit(i.Interaction, edit); err != nil {
		log.Printf("[ERROR] edit error response: %v", err)
	}
}

// RefreshStoredCharts regenerates every stored chart in place. Used by the
// scheduler; failures are logged per chart and never abort the sweep.
func (b *Bot) RefreshStoredCharts() {
	recs, err := b.store.List()
	if err != nil {
		log.Printf("[ERROR] list stored charts: %v", err)
		return
	}
	for _, rec := range recs {
		if err := b.refreshMessage(rec); err != nil {
			log.Printf("[WARN] refresh chart %s (%s): %v", rec.MessageID, rec.Symbol, err)
		}
	}
	if len(recs) > 0 {
		log.Printf("[INFO] refreshed %d stored charts", len(recs))
	}
}

func (b *Bot) refreshMessage(rec *store.ChartRecord) error {
	res, err := b.gen.Generate(requestOf(rec))
	if err != nil {
		return err
	}
	png, err := render.Chart(res)
	if err != nil {
		return err
	}

	content := ResultContent(res)
	none := []*discordgo.MessageAttachment{}
	_, err = b.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:     rec.ChannelID,
		ID:          rec.MessageID,
		Content:     &content,
		Files:       []*discordgo.File{chartFile(png)},
		Attachments: &none,
	})
	return err
}

func requestOf(rec *store.ChartRecord) chart.Request {
	return chart.Request{
		Symbol:     rec.Symbol,
		Expiration: rec.Expiration,
		OptionType: rec.OptionType,
		Days:       rec.Days,
	}
}

func chartFile(png []byte) *discordgo.File {
	return &discordgo.File{
		Name:        "ivchart.png",
		ContentType: "image/png",
		Reader:      bytes.NewReader(png),
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
