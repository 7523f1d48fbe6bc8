package inventory

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"SellerWithMarket/internal/config"
	"SellerWithMarket/pkg/logging"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Названия колонок в файле остатков поставщика
const (
	ColumnCode     = "Код"
	ColumnQuantity = "Количество"
	ColumnPrice    = "Цена"
)

// Record - одна строка из файла остатков поставщика
type Record struct {
	Code     string
	Quantity string
	Price    string
}

// Download скачивает архив остатков с сайта поставщика и возвращает список остатков
func Download() ([]Record, error) {

	logger := logging.GetLogger()
	logger.Println("Download:>Start")
	defer logger.Println("Download:>End")

	cfg := config.GetConfig()
	logger.Debugf("URL остатков: %s", cfg.INVENTORY.URL)

	resp, err := http.Get(cfg.INVENTORY.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка при скачивании остатков, url: %s", cfg.INVENTORY.URL)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logger.Errorf("failed Body.Close()")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(fmt.Sprintf("сайт поставщика вернул статус %d, url: %s", resp.StatusCode, cfg.INVENTORY.URL))
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при ioutil.ReadAll(resp.Body)")
	}

	data, err := Unzip(body, cfg.INVENTORY.File)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка при распаковке архива, файл: %s", cfg.INVENTORY.File)
	}

	return Parse(data, cfg.INVENTORY.HeaderOffset)
}

// Unzip достает файл name из zip-архива в памяти
func Unzip(archive []byte, name string) ([]byte, error) {

	zipReader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при zip.NewReader")
	}

	for _, f := range zipReader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "ошибка при открытии %s в архиве", f.Name)
		}
		data, err := ioutil.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "ошибка при чтении %s из архива", f.Name)
		}
		return data, nil
	}

	return nil, errors.New(fmt.Sprintf("файл %s не найден в архиве", name))
}

// Parse читает таблицу остатков; headerOffset - количество строк над строкой заголовка
func Parse(data []byte, headerOffset int) ([]Record, error) {

	logger := logging.GetLogger()
	logger.Println("Parse:>Start")
	defer logger.Println("Parse:>End")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка при excelize.OpenReader")
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка при чтении листа %s", sheet)
	}

	if len(rows) <= headerOffset {
		return nil, errors.New(fmt.Sprintf("в файле остатков нет строки заголовка, строк: %d", len(rows)))
	}

	header := rows[headerOffset]
	codeCol, quantityCol, priceCol := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case ColumnCode:
			codeCol = i
		case ColumnQuantity:
			quantityCol = i
		case ColumnPrice:
			priceCol = i
		}
	}
	if codeCol == -1 || quantityCol == -1 || priceCol == -1 {
		return nil, errors.New(fmt.Sprintf("не найдены колонки %s/%s/%s в строке заголовка", ColumnCode, ColumnQuantity, ColumnPrice))
	}

	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var records []Record
	for _, row := range rows[headerOffset+1:] {
		code := cell(row, codeCol)
		if code == "" {
			continue
		}
		records = append(records, Record{
			Code:     code,
			Quantity: cell(row, quantityCol),
			Price:    cell(row, priceCol),
		})
	}

	logger.Infof("Прочитано строк остатков: %d", len(records))

	return records, nil
}
