package discord

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/olekukonko/tablewriter"
	"github.com/riskecrp/meridian-bot/internal/dossier"
	"github.com/riskecrp/meridian-bot/internal/log"
)

// propertiesPerPage keeps one rendered table page comfortably inside the
// 4096 character embed description limit.
const propertiesPerPage = 15

func ErrorMessage(command string, err error) *discordgo.MessageEmbed {
	if err == nil {
		err = ErrCommandFailed
	}

	return NewEmbed("Error Returned").Embed().
		SetColor(ColourError).
		AddField("command", command).
		SetDescription(err.Error()).MessageEmbed
}

func DefaultTable(writer io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(writer)
}

// paginateProperties splits the reward log into display pages.
func paginateProperties(records []dossier.PropertyRecord, perPage int) [][]dossier.PropertyRecord {
	if perPage <= 0 {
		perPage = propertiesPerPage
	}

	var pages [][]dossier.PropertyRecord

	for start := 0; start < len(records); start += perPage {
		end := min(start+perPage, len(records))
		pages = append(pages, records[start:end])
	}

	return pages
}

func renderPropertyPage(records []dossier.PropertyRecord) string {
	var buf bytes.Buffer

	tbl := DefaultTable(&buf)
	tbl.Header("Date", "Faction", "Address", "Type", "Confiscated")

	for _, record := range records {
		confiscated := ""
		if record.Confiscated {
			confiscated = record.DateConfiscated
			if confiscated == "" {
				confiscated = "yes"
			}
		}

		if errAppend := tbl.Append([]string{
			record.DateGiven, record.Faction, record.Address, record.Type, confiscated,
		}); errAppend != nil {
			slog.Error("Failed to append property row", log.ErrAttr(errAppend))
		}
	}

	if errRender := tbl.Render(); errRender != nil {
		slog.Error("Failed to render property table", log.ErrAttr(errRender))
	}

	return "```\n" + buf.String() + "```"
}
