package dataset

import "github.com/vdeh-bibliothek/bibfusion/internal/record"

// Row is one record of the enriched dataset the retrieval pipeline
// produces: the VDEh source fields plus the flattened columns of the six
// candidate variants. Column names follow the enrichment stage's output
// (plain prefix for the ID-based lookup, _ta for title/author, _ty for
// title/year).
type Row struct {
	ID        string `json:"id" parquet:"id"`
	Title     string `json:"title" parquet:"title"`
	Authors   string `json:"authors_str" parquet:"authors_str"`
	Year      int32  `json:"year" parquet:"year"`
	Publisher string `json:"publisher" parquet:"publisher"`
	Pages     string `json:"pages" parquet:"pages"`
	ISBN      string `json:"isbn" parquet:"isbn"`
	ISSN      string `json:"issn" parquet:"issn"`
	Language  string `json:"language" parquet:"language"`

	DNBTitle     string `json:"dnb_title" parquet:"dnb_title"`
	DNBAuthors   string `json:"dnb_authors" parquet:"dnb_authors"`
	DNBYear      int32  `json:"dnb_year" parquet:"dnb_year"`
	DNBPublisher string `json:"dnb_publisher" parquet:"dnb_publisher"`
	DNBPages     string `json:"dnb_pages" parquet:"dnb_pages"`
	DNBISBN      string `json:"dnb_isbn" parquet:"dnb_isbn"`
	DNBISSN      string `json:"dnb_issn" parquet:"dnb_issn"`

	DNBTitleTA     string `json:"dnb_title_ta" parquet:"dnb_title_ta"`
	DNBAuthorsTA   string `json:"dnb_authors_ta" parquet:"dnb_authors_ta"`
	DNBYearTA      int32  `json:"dnb_year_ta" parquet:"dnb_year_ta"`
	DNBPublisherTA string `json:"dnb_publisher_ta" parquet:"dnb_publisher_ta"`
	DNBPagesTA     string `json:"dnb_pages_ta" parquet:"dnb_pages_ta"`
	DNBISBNTA      string `json:"dnb_isbn_ta" parquet:"dnb_isbn_ta"`
	DNBISSNTA      string `json:"dnb_issn_ta" parquet:"dnb_issn_ta"`

	DNBTitleTY     string `json:"dnb_title_ty" parquet:"dnb_title_ty"`
	DNBAuthorsTY   string `json:"dnb_authors_ty" parquet:"dnb_authors_ty"`
	DNBYearTY      int32  `json:"dnb_year_ty" parquet:"dnb_year_ty"`
	DNBPublisherTY string `json:"dnb_publisher_ty" parquet:"dnb_publisher_ty"`
	DNBPagesTY     string `json:"dnb_pages_ty" parquet:"dnb_pages_ty"`
	DNBISBNTY      string `json:"dnb_isbn_ty" parquet:"dnb_isbn_ty"`
	DNBISSNTY      string `json:"dnb_issn_ty" parquet:"dnb_issn_ty"`

	LoCTitle     string `json:"loc_title" parquet:"loc_title"`
	LoCAuthors   string `json:"loc_authors" parquet:"loc_authors"`
	LoCYear      int32  `json:"loc_year" parquet:"loc_year"`
	LoCPublisher string `json:"loc_publisher" parquet:"loc_publisher"`
	LoCPages     string `json:"loc_pages" parquet:"loc_pages"`
	LoCISBN      string `json:"loc_isbn" parquet:"loc_isbn"`
	LoCISSN      string `json:"loc_issn" parquet:"loc_issn"`

	LoCTitleTA     string `json:"loc_title_ta" parquet:"loc_title_ta"`
	LoCAuthorsTA   string `json:"loc_authors_ta" parquet:"loc_authors_ta"`
	LoCYearTA      int32  `json:"loc_year_ta" parquet:"loc_year_ta"`
	LoCPublisherTA string `json:"loc_publisher_ta" parquet:"loc_publisher_ta"`
	LoCPagesTA     string `json:"loc_pages_ta" parquet:"loc_pages_ta"`
	LoCISBNTA      string `json:"loc_isbn_ta" parquet:"loc_isbn_ta"`
	LoCISSNTA      string `json:"loc_issn_ta" parquet:"loc_issn_ta"`

	LoCTitleTY     string `json:"loc_title_ty" parquet:"loc_title_ty"`
	LoCAuthorsTY   string `json:"loc_authors_ty" parquet:"loc_authors_ty"`
	LoCYearTY      int32  `json:"loc_year_ty" parquet:"loc_year_ty"`
	LoCPublisherTY string `json:"loc_publisher_ty" parquet:"loc_publisher_ty"`
	LoCPagesTY     string `json:"loc_pages_ty" parquet:"loc_pages_ty"`
	LoCISBNTY      string `json:"loc_isbn_ty" parquet:"loc_isbn_ty"`
	LoCISSNTY      string `json:"loc_issn_ty" parquet:"loc_issn_ty"`
}

// Source builds the trusted source record, funneling every value through
// the absence normalization.
func (r *Row) Source() record.SourceRecord {
	return record.SourceRecord{
		ID:        record.CleanString(r.ID),
		Title:     record.CleanString(r.Title),
		Authors:   record.CleanString(r.Authors),
		Year:      record.CleanYear(int(r.Year)),
		Publisher: record.CleanString(r.Publisher),
		Pages:     record.CleanString(r.Pages),
		ISBN:      record.CleanString(r.ISBN),
		ISSN:      record.CleanString(r.ISSN),
		Language:  record.CleanString(r.Language),
	}
}

// Variants builds the six candidate slots. Slots with no data are
// omitted; the engine treats them as absent either way.
func (r *Row) Variants() map[record.VariantKey]*record.CandidateVariant {
	variants := map[record.VariantKey]*record.CandidateVariant{
		record.DNBID:          variant(r.DNBTitle, r.DNBAuthors, r.DNBYear, r.DNBPublisher, r.DNBPages, r.DNBISBN, r.DNBISSN),
		record.DNBTitleAuthor: variant(r.DNBTitleTA, r.DNBAuthorsTA, r.DNBYearTA, r.DNBPublisherTA, r.DNBPagesTA, r.DNBISBNTA, r.DNBISSNTA),
		record.DNBTitleYear:   variant(r.DNBTitleTY, r.DNBAuthorsTY, r.DNBYearTY, r.DNBPublisherTY, r.DNBPagesTY, r.DNBISBNTY, r.DNBISSNTY),
		record.LoCID:          variant(r.LoCTitle, r.LoCAuthors, r.LoCYear, r.LoCPublisher, r.LoCPages, r.LoCISBN, r.LoCISSN),
		record.LoCTitleAuthor: variant(r.LoCTitleTA, r.LoCAuthorsTA, r.LoCYearTA, r.LoCPublisherTA, r.LoCPagesTA, r.LoCISBNTA, r.LoCISSNTA),
		record.LoCTitleYear:   variant(r.LoCTitleTY, r.LoCAuthorsTY, r.LoCYearTY, r.LoCPublisherTY, r.LoCPagesTY, r.LoCISBNTY, r.LoCISSNTY),
	}
	for key, v := range variants {
		if v.Empty() {
			delete(variants, key)
		}
	}
	return variants
}

func variant(title, authors string, year int32, publisher, pages, isbn, issn string) *record.CandidateVariant {
	return &record.CandidateVariant{
		Title:     record.CleanString(title),
		Authors:   record.CleanString(authors),
		Year:      record.CleanYear(int(year)),
		Publisher: record.CleanString(publisher),
		Pages:     record.CleanString(pages),
		ISBN:      record.CleanString(isbn),
		ISSN:      record.CleanString(issn),
	}
}
