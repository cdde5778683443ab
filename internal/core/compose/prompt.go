package compose

const defaultVideoPrompt = `Create a YouTube explainer description, hashtags and keywords, thumbnail copy, and a video outline.

Theme: "%s"

Conditions:
%s

Output JSON with the following keys:
- "title": proposed video title
- "summary": video description text (for the description box)
- "hashtags": ["hashtag 1", "hashtag 2", ...]
- "keywords": ["related keyword 1", "related keyword 2", ...]
- "thumbnail_text": copy for the thumbnail image that makes people click
- "outline": [
    {
        "section_title": "section 1 title plus time range (0:00~0:00)",
        "points": ["key point 1 of this section", "key point 2", ...]
    },
    {
        "section_title": "section 2 title plus time range (0:00~0:00)",
        "points": ["key point 1 of this section", "key point 2", ...]
    }
]

` + "```json\n{\n}\n```\n"

const defaultColumnPrompt = `You are an experienced content writer.
Given the theme and conditions below, write a high-quality column article that satisfies the reader's curiosity.

## Theme: "%s"

## Conditions:
%s

## Format to aim for:
Each section is not a list of facts but an explanatory passage with background and a sense of story.

### Title: something that captures the heart of the theme and makes readers want to click.
#### Category: three keywords that accurately describe the article.
##### Headings and body: each section gets a heading that sums it up and a body of roughly 300 characters, written as if speaking to the reader.

## Output format:
Output JSON with the keys below. Write "body_text" as a 200-300 character body that addresses the reader directly.

` + "```json" + `
{
    "title": "proposed article title",
    "category": "article categories (about 3, concise)",
    "sections": [
        {
            "heading": "heading of section 1",
            "body_text": "(body of section 1, 200-300 characters)"
        },
        {
            "heading": "heading of section 2",
            "body_text": "(body of section 2, 200-300 characters)"
        }
    ]
}
` + "```\n"
