package reconcile

// Article is one row of the BHL segment import spreadsheet. Unresolved
// fields are empty strings.
type Article struct {
	Title             string `yaml:"title" parquet:"title"`
	TranslatedTitle   string `yaml:"translated_title" parquet:"translated_title"`
	ItemID            string `yaml:"item_id" parquet:"item_id"`
	Volume            string `yaml:"volume" parquet:"volume"`
	Issue             string `yaml:"issue" parquet:"issue"`
	Series            string `yaml:"series" parquet:"series"`
	Date              string `yaml:"date" parquet:"date"`
	Language          string `yaml:"language" parquet:"language"`
	Authors           string `yaml:"authors" parquet:"authors"`
	StartPage         string `yaml:"start_page" parquet:"start_page"`
	EndPage           string `yaml:"end_page" parquet:"end_page"`
	StartPageID       string `yaml:"start_page_id" parquet:"start_page_id"`
	EndPageID         string `yaml:"end_page_id" parquet:"end_page_id"`
	AdditionalPageIDs string `yaml:"additional_page_ids" parquet:"additional_page_ids"`
	DOI               string `yaml:"doi" parquet:"doi"`
	PartID            string `yaml:"part_id" parquet:"part_id"`
}

// Fields returns the article's values in spreadsheet column order. The
// matched part id is appended when withPartID is set.
func (a Article) Fields(withPartID bool) []string {
	fields := []string{
		a.Title,
		a.TranslatedTitle,
		a.ItemID,
		a.Volume,
		a.Issue,
		a.Series,
		a.Date,
		a.Language,
		a.Authors,
		a.StartPage,
		a.EndPage,
		a.StartPageID,
		a.EndPageID,
		a.AdditionalPageIDs,
		a.DOI,
	}
	if withPartID {
		fields = append(fields, a.PartID)
	}
	return fields
}
